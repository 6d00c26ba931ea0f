// Package validate holds the process-wide validator instance and the custom
// rules shared by manifest and cluster-document validation.
package validate

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	inst *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
	identPattern  = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Instance returns the shared validator, registering the `semver` and
// `ident` rules on first use.
func Instance() *validator.Validate {
	once.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("ident", func(fl validator.FieldLevel) bool {
			return identPattern.MatchString(fl.Field().String())
		})

		inst = v
	})

	return inst
}
