package utils

import (
	"fmt"

	errs "gamey/internal/errors"
)

const ApiVersion = "v1"

func CheckApiVersion(version string) error {
	if version != ApiVersion {
		return fmt.Errorf("%w: %s", errs.ErrUnsupportedVersion, version)
	}
	return nil
}
