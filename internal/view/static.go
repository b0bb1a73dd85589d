package view

import "embed"

// Static holds the stylesheet and default images served under /static/.
//
//go:embed static
var Static embed.FS
