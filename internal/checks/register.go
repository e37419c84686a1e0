// Package checks imports all check category packages to trigger their init() registrations.
package checks

// Each category package registers its checks via init() functions.
// Blank imports ensure the init() functions run.

import (
	_ "github.com/AntTheLimey/ddldoc/internal/checks/docs"
	_ "github.com/AntTheLimey/ddldoc/internal/checks/schema"
	_ "github.com/AntTheLimey/ddldoc/internal/checks/syntax"
)
