// Package location extracts the project and research question identifiers
// from the address of the service's coding view, e.g.
//
//	https://www.qcamap.org/ui/projects/26562/rq/39860/coding
package location

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/qcatools/qcamap.go/pkg/constants"
)

var codingViewPattern = regexp.MustCompile(`/projects/(?P<projectId>[0-9]+)/rq/(?P<researchQuestionId>[0-9]+)/coding`)

// Location identifies a coding view.
type Location struct {
	// BaseURL is scheme and host of the address, empty for bare paths.
	BaseURL            string
	ProjectID          int64
	ResearchQuestionID int64
}

func Parse(href string) (*Location, error) {
	u, err := url.Parse(href)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constants.ErrNoLocationMatch, err)
	}

	m := codingViewPattern.FindStringSubmatch(u.Path)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", constants.ErrNoLocationMatch, href)
	}

	loc := &Location{}
	if u.Scheme != "" && u.Host != "" {
		loc.BaseURL = u.Scheme + "://" + u.Host
	}
	if loc.ProjectID, err = strconv.ParseInt(m[codingViewPattern.SubexpIndex("projectId")], 10, 64); err != nil {
		return nil, fmt.Errorf("%w: project id: %v", constants.ErrNoLocationMatch, err)
	}
	if loc.ResearchQuestionID, err = strconv.ParseInt(m[codingViewPattern.SubexpIndex("researchQuestionId")], 10, 64); err != nil {
		return nil, fmt.Errorf("%w: research question id: %v", constants.ErrNoLocationMatch, err)
	}
	return loc, nil
}
