// Package seed loads the activity catalog the service starts with.
//
// A catalog is an HCL (or HCL-flavoured JSON) file of activity blocks:
//
//	activity "Chess Club" {
//	  description      = "Learn strategies and compete in chess tournaments"
//	  schedule         = "Fridays, 3:30 PM - 5:00 PM"
//	  max_participants = 12
//	  participants     = ["michael@mergington.edu"]
//	}
//
// When no file is configured the embedded default catalog is used.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

//go:embed activities.hcl
var defaultCatalog []byte

type catalogFile struct {
	Activities []activityBlock `hcl:"activity,block"`
}

type activityBlock struct {
	Name            string   `hcl:"name,label"`
	Description     string   `hcl:"description"`
	Schedule        string   `hcl:"schedule"`
	MaxParticipants int      `hcl:"max_participants"`
	Participants    []string `hcl:"participants,optional"`
}

// Default returns the embedded catalog.
func Default() (model.Catalog, error) {
	return Parse("activities.hcl", defaultCatalog)
}

// Load returns the catalog at path, or the embedded default when path is empty.
func Load(path string) (model.Catalog, error) {
	if path == "" {
		return Default()
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(path, src)
}

// Parse decodes src. The filename extension selects native HCL (.hcl) or
// JSON (.json) syntax and is used in diagnostics.
func Parse(filename string, src []byte) (model.Catalog, error) {
	var file catalogFile
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}

	catalog := make(model.Catalog, len(file.Activities))
	for _, b := range file.Activities {
		if strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("%s: activity name must not be empty", filename)
		}
		if _, dup := catalog[b.Name]; dup {
			return nil, fmt.Errorf("%s: activity %q declared twice", filename, b.Name)
		}
		if b.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%s: activity %q: max_participants must be a positive integer", filename, b.Name)
		}

		participants := make([]string, 0, len(b.Participants))
		seen := make(map[string]struct{}, len(b.Participants))
		for _, email := range b.Participants {
			if _, ok := seen[email]; ok {
				return nil, fmt.Errorf("%s: activity %q: participant %q listed twice", filename, b.Name, email)
			}
			seen[email] = struct{}{}
			participants = append(participants, email)
		}

		catalog[b.Name] = model.Activity{
			Description:     b.Description,
			Schedule:        b.Schedule,
			MaxParticipants: b.MaxParticipants,
			Participants:    participants,
		}
	}
	return catalog, nil
}
