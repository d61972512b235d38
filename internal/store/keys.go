package store

// Well-known state keys.
const (
	KeyCatalogData      = "catalog.data"
	KeyCatalogSHA       = "catalog.sha"
	KeyGitHubOwner      = "github.owner"
	KeyGitHubRepo       = "github.repo"
	KeyGitHubBranch     = "github.branch"
	KeyGitHubPath       = "github.path"
	KeyGitHubToken      = "github.token"
	KeyAuthPasswordHash = "auth.password_hash"
	KeyAuthSecret       = "auth.secret"
	KeyAuthSession      = "auth.session"
	KeyDisplayTheme     = "display.theme"
	KeyDisplayView      = "display.view"
)
