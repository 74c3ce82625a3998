package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrPostsFolderRequired  = runtimeconfig.ErrPostsFolderRequired
	ErrDraftsFolderRequired = runtimeconfig.ErrDraftsFolderRequired
	ErrPagesFolderRequired  = runtimeconfig.ErrPagesFolderRequired
	ErrLoggingLevelInvalid  = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid = runtimeconfig.ErrLoggingFormatInvalid
	ErrItemsPerPageInvalid  = runtimeconfig.ErrItemsPerPageInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	FoldersConfig  = runtimeconfig.FoldersConfig
	ServerConfig   = runtimeconfig.ServerConfig
	CacheConfig    = runtimeconfig.CacheConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)
