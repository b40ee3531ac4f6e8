//go:build tools

package model

import (
	_ "github.com/dmarkham/enumer"
)
