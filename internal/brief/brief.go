// Package brief turns free-form request text into a task draft.
package brief

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/akyairhashvil/sprintboard/internal/models"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

// MaxTitleRunes bounds the title taken from the first line of a brief.
const MaxTitleRunes = 60

// DefaultPoints is the estimate given when the text carries none.
const DefaultPoints = 3

var ErrEmpty = errors.New("brief: empty text")

// Extractor converts raw request text into a structured brief.
type Extractor interface {
	Extract(ctx context.Context, text string) (models.Brief, error)
}

var (
	sprintPattern    = regexp.MustCompile(`(?i)\bsprint\s*#?\s*(\d+)\b`)
	requesterPattern = regexp.MustCompile(`(?i)\brequester[ \t]*:[ \t]*([^\n,;.]+)`)
	fromPattern      = regexp.MustCompile(`\b[Ff]rom[ \t]+(\p{Lu}[\p{L}'-]*(?:[ \t]+\p{Lu}[\p{L}'-]*)?)`)
	pointsPattern    = regexp.MustCompile(`(?i)\b(\d+)\s*(?:pts|points?)\b`)
)

var priorityKeywords = []struct {
	priority models.Priority
	words    []string
}{
	{models.PriorityCritical, []string{"urgent", "asap", "critical", "blocker"}},
	{models.PriorityHigh, []string{"important", "high priority", "soon"}},
}

var categoryKeywords = []struct {
	category models.Category
	words    []string
}{
	{models.CategoryBranding, []string{"logo", "brand", "identity", "rebrand"}},
	{models.CategorySocialMedia, []string{"instagram", "facebook", "tiktok", "social", "story", "post", "reel"}},
	{models.CategorySearchArbitrage, []string{"landing", "arbitrage", "search", "seo", "ads", "ctr"}},
}

// Heuristic extracts a brief with keyword and pattern matching. It never
// calls out and is used when no external extractor is configured.
type Heuristic struct{}

func (Heuristic) Extract(ctx context.Context, text string) (models.Brief, error) {
	if err := ctx.Err(); err != nil {
		return models.Brief{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Brief{}, ErrEmpty
	}
	lower := strings.ToLower(text)

	b := models.Brief{
		Title:       titleFrom(text),
		Description: text,
		Points:      DefaultPoints,
		Priority:    models.PriorityNormal,
		Category:    models.CategoryOther,
	}
	b.ReferenceLinks = util.ExtractLinks(text)

	if m := sprintPattern.FindStringSubmatch(text); m != nil {
		b.Sprint = "Sprint " + m[1]
	}
	if m := requesterPattern.FindStringSubmatch(text); m != nil {
		b.Requester = strings.TrimSpace(m[1])
	} else if m := fromPattern.FindStringSubmatch(text); m != nil {
		b.Requester = strings.TrimSpace(m[1])
	}
	if m := pointsPattern.FindStringSubmatch(text); m != nil {
		if n := fibonacciPoints(m[1]); n > 0 {
			b.Points = n
		}
	}

priority:
	for _, p := range priorityKeywords {
		for _, w := range p.words {
			if strings.Contains(lower, w) {
				b.Priority = p.priority
				break priority
			}
		}
	}
category:
	for _, c := range categoryKeywords {
		for _, w := range c.words {
			if containsWord(lower, w) {
				b.Category = c.category
				break category
			}
		}
	}
	return b, nil
}

// Fallback tries Primary and falls back to the heuristic extractor when it
// fails for any reason other than cancellation.
type Fallback struct {
	Primary Extractor
	Logger  *slog.Logger
}

func (f Fallback) Extract(ctx context.Context, text string) (models.Brief, error) {
	if f.Primary != nil {
		b, err := f.Primary.Extract(ctx, text)
		if err == nil {
			return b, nil
		}
		if errors.Is(err, context.Canceled) {
			return models.Brief{}, err
		}
		logger := f.Logger
		if logger == nil {
			logger = util.DiscardLogger()
		}
		logger.Warn("brief extractor failed, using heuristic", slog.String("error", err.Error()))
	}
	return Heuristic{}.Extract(ctx, text)
}

// ToDraft turns a brief into a task draft. No semantic validation happens
// here; the engine applies defaults when the draft is created.
func ToDraft(b models.Brief) models.TaskDraft {
	return Merge(models.TaskDraft{}, b)
}

// Merge overlays b on an existing draft. Requester and sprint are only taken
// when the brief has them; reference links are appended.
func Merge(d models.TaskDraft, b models.Brief) models.TaskDraft {
	d.Title = b.Title
	d.Description = b.Description
	if b.Requester != "" {
		d.Requester = b.Requester
	}
	if b.Sprint != "" {
		d.Sprint = b.Sprint
	}
	if b.Points > 0 {
		d.Points = b.Points
	}
	if b.Category != "" {
		d.Category = b.Category
	}
	if b.Priority != "" {
		d.Priority = b.Priority
	}
	if len(b.ReferenceLinks) > 0 {
		links := append([]string(nil), d.ReferenceLinks...)
		d.ReferenceLinks = append(links, b.ReferenceLinks...)
	}
	return d
}

func titleFrom(text string) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(util.StripLinks(line))
	if line == "" {
		return "New Task"
	}
	if utf8.RuneCountInString(line) <= MaxTitleRunes {
		return line
	}
	runes := []rune(line)
	return strings.TrimSpace(string(runes[:MaxTitleRunes-3])) + "..."
}

func fibonacciPoints(v string) int {
	switch v {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "5":
		return 5
	case "8":
		return 8
	case "13":
		return 13
	}
	return 0
}

func containsWord(text, word string) bool {
	for i := 0; ; {
		j := strings.Index(text[i:], word)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(word)
		if (start == 0 || !isLetter(text[start-1])) && (end == len(text) || !isLetter(text[end])) {
			return true
		}
		i = start + 1
	}
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
