package file

import (
	"strings"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// EnvBaseURL overrides api.base_url from the settings file.
const EnvBaseURL = "CLAIMS_API_BASE_URL"

// Resolve layers the environment and a command-line flag over stored
// settings. The flag wins over the environment, which wins over the file.
func Resolve(stored domain.ClientSettings, getenv func(string) string, flagURL string) (domain.ClientSettings, error) {
	s := stored
	if getenv != nil {
		if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
			s.BaseURL = v
		}
	}
	if v := strings.TrimSpace(flagURL); v != "" {
		s.BaseURL = v
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if err := s.Validate(); err != nil {
		return stored, err
	}
	return s, nil
}
