package build

import "strings"

var (
	Version = "dev"
	AppName = "SQLSplit"
	Slug    = ""
)

func init() {
	if Slug == "" {
		Slug = strings.ToLower(AppName)
	}
}
