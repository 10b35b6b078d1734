package migration

import "embed"

// scriptsDir is the directory inside embeddedScripts holding the goose files
const scriptsDir = "scripts"

//go:embed scripts/*.sql
var embeddedScripts embed.FS
