package cli

import (
	"errors"

	"github.com/salafuz/admin-panel/internal/client/api"
	"github.com/salafuz/admin-panel/internal/client/auth"
	"github.com/salafuz/admin-panel/internal/client/iocli"
	"github.com/salafuz/admin-panel/internal/client/storage"
	"github.com/salafuz/admin-panel/internal/client/store"
)

// AppName is the binary name used in hints and usage
const AppName = "admin"

// PasswordEnv is the environment variable consulted by login before prompting
const PasswordEnv = "ADMIN_PASSWORD"

var (
	// ErrUsage is returned for malformed command lines; usage has already been printed
	ErrUsage = errors.New("invalid usage")

	// ErrNotAuthenticated is returned when a command needs a session and there is none
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Cli связывает команды с сессией, хранилищами коллекций и терминалом
type Cli struct {
	io      iocli.IO
	client  *api.Client
	session *auth.Manager
	stores  *store.Stores
	prefs   storage.MetadataStorage
}

// New создает CLI. Сигнал о необходимости повторного входа выводится подсказкой.
func New(io iocli.IO, client *api.Client, session *auth.Manager, stores *store.Stores, prefs storage.MetadataStorage) *Cli {
	c := &Cli{
		io:      io,
		client:  client,
		session: session,
		stores:  stores,
		prefs:   prefs,
	}
	client.OnLoginRequired(c.loginRequired)
	return c
}

func (c *Cli) loginRequired() {
	c.io.Println("Your session has expired. Run '" + AppName + " login' to sign in again.")
}

// PrintUsage prints the command reference
func PrintUsage(out iocli.IO) {
	out.Println("salaf.uz admin panel client")
	out.Println()
	out.Println("Usage:")
	out.Println("  " + AppName + " [OPTIONS] COMMAND [ARGS]")
	out.Println()
	out.Println("Options:")
	out.Println("  --version              Show version information")
	out.Println("  --server URL           API base URL (env ADMIN_API_BASE_URL, default http://localhost:7000/api/v1)")
	out.Println("  --db PATH              Path to local session database (env ADMIN_DB_PATH)")
	out.Println("  --timeout DURATION     Request timeout (env ADMIN_API_TIMEOUT, default 10s)")
	out.Println("  --log-level LEVEL      debug, info, warn or error (env ADMIN_LOG_LEVEL)")
	out.Println()
	out.Println("Commands:")
	out.Println("  login [--login NAME] [--password-file PATH]   Sign in (password from " + PasswordEnv + ", file or prompt)")
	out.Println("  logout                                        Sign out and forget the session")
	out.Println("  status                                        Show the current session")
	out.Println()
	out.Println("  <resource> list [--page N] [--per-page N] [--search S] [--sort F] [--direction asc|desc] [--status S]")
	out.Println("  <resource> get <id>")
	out.Println("  <resource> create --data JSON | --file PATH")
	out.Println("  <resource> update <id> --data JSON | --file PATH")
	out.Println("  <resource> delete <id>                        Move to the deleted set")
	out.Println("  <resource> restore <id>                       Restore from the deleted set")
	out.Println("  <resource> purge <id>                         Delete permanently")
	out.Println("  <resource> deleted                            List the deleted set")
	out.Println()
	out.Println("  posts tag <id> <tagID>                        Attach a tag to a post")
	out.Println("  posts untag <id> <tagID>                      Detach a tag from a post")
	out.Println("  categories by-name <name>                     Find a category by name")
	out.Println("  images upload <path>                          Upload an image file")
	out.Println("  images preview <name>                         Print the preview URL of an image")
	out.Println()
	out.Println("Resources: posts, categories, tags, scholars, images")
	out.Println()
	out.Println("Examples:")
	out.Println("  " + AppName + " login --login admin")
	out.Println("  " + AppName + " posts list --page 2 --per-page 10 --status draft")
	out.Println("  " + AppName + ` categories create --data '{"name":"Aqidah"}'`)
	out.Println("  " + AppName + " images upload ./cover.png")
}
