package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"MacroGold/internal/domain/models"
)

// defaultFetchTimeout bounds a fetch when the source config leaves it unset.
const defaultFetchTimeout = 30 * time.Second

func fetchTimeout(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return defaultFetchTimeout
}

// okStatus wraps a rendered section into a Done status.
func okStatus(source, text string) models.SourceStatus {
	return models.SourceStatus{Source: source, Text: text, Stage: models.StageDone}
}

// failStatus reduces a fault to a Failed status. The section stays in the
// digest with the title and the proximate cause, so one broken upstream is
// visible without hiding the rest.
func failStatus(source, title string, err error) models.SourceStatus {
	stage := models.StageFetching
	var sf *models.SourceFault
	if errors.As(err, &sf) {
		stage = sf.Stage
	}
	return models.SourceStatus{
		Source: source,
		Text:   fmt.Sprintf("%s\n- failed: %v", title, err),
		Stage:  stage,
		Err:    err,
	}
}

// faultKind is the metrics label for a reduced fault.
func faultKind(err error) string {
	if k := models.FaultKindOf(err); k != "" {
		return string(k)
	}
	return "other"
}

// groupThousands renders a whole number with comma separators, e.g. 123456
// -> "123,456". Positioning sizes are reported in whole lots.
func groupThousands(v float64) string {
	n := int64(v)
	s := strconv.FormatInt(n, 10)
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
