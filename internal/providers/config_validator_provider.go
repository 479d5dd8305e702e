package providers

import (
	"fmt"
	"strings"

	"github.com/gookit/validate"

	"alertd/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	// Scheme check is outside gookit's built-in rule set.
	url := cv.conf.Connection.URL
	if !strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") {
		return fmt.Errorf("connection.url must use ws:// or wss:// scheme, got %q", url)
	}
	return nil
}
