package migrations

import "embed"

// FS holds the versioned schema files. They are applied in filename order.
//
//go:embed *.sql
var FS embed.FS
