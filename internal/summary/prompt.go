package summary

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"feedloom/internal/services/llm"
)

// Options parameterize the instruction turn sent with each article.
type Options struct {
	KeywordCount  int
	SummaryLength int
	Language      string
	CustomModel   string
}

// Messages builds the prompt pair for one article: a user turn carrying the
// cleaned text and an instruction turn. The literal "<br><br>" must appear
// exactly twice immediately before the localized word for "Summary:"; the
// renderer depends on that marker.
func Messages(text string, opts Options) []llm.Message {
	return []llm.Message{
		{Role: "user", Content: text},
		{Role: "assistant", Content: instruction(opts)},
	}
}

func instruction(opts Options) string {
	if opts.Language == "zh" {
		return fmt.Sprintf(
			"请用中文总结这篇文章，先提取出%d个关键词，在同一行内输出，然后换行，"+
				"用中文在%d字内写一个流畅自然的总结，以连贯的段落形式呈现，避免使用编号列表，"+
				"使用自然的语言过渡，并按照以下格式输出'<br><br>总结:'，<br>是HTML的换行符，"+
				"输出时必须保留2个，并且必须在'总结:'二字之前",
			opts.KeywordCount, opts.SummaryLength)
	}
	return fmt.Sprintf(
		"Please summarize this article in %s language. "+
			"First, extract %d keywords and present them on a single line. "+
			"Then, write a natural, flowing summary of approximately %d words in %s. "+
			"Present the summary as a cohesive paragraph rather than numbered points. "+
			"Use natural transitions between ideas and avoid numbered lists. "+
			"Format the output with '<br><br>Summary:' where <br> is the HTML line break. "+
			"The two <br> tags must appear directly before the word 'Summary:'",
		languageName(opts.Language), opts.KeywordCount, opts.SummaryLength, languageName(opts.Language))
}

// languageName resolves a BCP 47 tag to its English display name so prompts
// read "in French" rather than "in fr". Unparseable values pass through as-is.
func languageName(lang string) string {
	trimmed := strings.TrimSpace(lang)
	if trimmed == "" {
		return "English"
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return trimmed
}
