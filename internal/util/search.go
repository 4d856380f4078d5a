package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a board filter string.
type SearchQuery struct {
	Designer  []string
	Requester []string
	Sprint    []string
	Type      []string
	Priority  []string
	Status    []string
	Text      []string
}

func fieldRegex(key string) *regexp.Regexp {
	return regexp.MustCompile(key + `:(?:"([^"]*)"|(\S+))`)
}

var (
	designerRegex  = fieldRegex("designer")
	requesterRegex = fieldRegex("requester")
	sprintRegex    = fieldRegex("sprint")
	typeRegex      = fieldRegex("type")
	priorityRegex  = fieldRegex("priority")
	statusRegex    = fieldRegex("status")
)

// ParseSearchQuery breaks down a raw query string into its structured components.
// Values containing spaces are quoted: sprint:"Sprint 24".
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}

	extract := func(re *regexp.Regexp) []string {
		matches := re.FindAllStringSubmatch(query, -1)
		if matches == nil {
			return nil
		}
		var values []string
		for _, match := range matches {
			if match[1] != "" {
				values = append(values, match[1])
			} else if match[2] != "" {
				values = append(values, match[2])
			}
		}
		query = re.ReplaceAllString(query, "")
		return values
	}

	sq.Designer = extract(designerRegex)
	sq.Requester = extract(requesterRegex)
	sq.Sprint = extract(sprintRegex)
	sq.Type = extract(typeRegex)
	sq.Priority = extract(priorityRegex)
	sq.Status = extract(statusRegex)
	sq.Text = strings.Fields(query)

	return sq
}
