// Command blog is the same binary as cmd/blog, kept at the root so
// `go install github.com/idilsaglam/blog@latest` works.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/blog/internal/cli"
)

func main() {
	apiURL := flag.String("api", "", "collection endpoint, overrides BLOG_API_URL")
	logLevel := flag.String("log-level", "", "log level, overrides BLOG_LOG_LEVEL")
	theme := flag.String("theme", "classic", "colour theme: classic, neon or mono")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	code := cli.Run(flag.Args(), cli.Options{APIURL: *apiURL, LogLevel: *logLevel, Theme: *theme})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
