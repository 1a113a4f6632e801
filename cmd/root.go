package cmd

import (
	"fmt"
	u "net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/Ulv/chunked-downloader/internal"
	"github.com/Ulv/chunked-downloader/utils"
)

var (
	output      string
	useTLS      bool
	login       string
	password    string
	urlListFile string
	debug       bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "chunkdl [URL]",
	Short:   "Chunkdl is a sequential low-memory HTTP file downloader",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(debug)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && urlListFile == "" {
			utils.PrintError("No URL or URL list provided")
			os.Exit(1)
		}
		if urlListFile != "" && len(args) > 0 {
			utils.PrintError("Cannot specify url argument and --urllist together, choose one")
			os.Exit(1)
		}
		if urlListFile != "" {
			entries, err := utils.ReadDownloadList(urlListFile)
			if err != nil {
				utils.PrintError("Failed to read URL list file")
				os.Exit(1)
			}
			if err := internal.RunBatch(entries); err != nil {
				fmt.Println()
				utils.PrintError("Encountered failed download(s)")
				os.Exit(1)
			}
			return
		}

		url := args[0]
		if _, err := u.Parse(url); err != nil {
			utils.PrintError("Invalid URL format")
			os.Exit(1)
		}
		dest := output
		if dest == "" {
			dest = utils.FilenameFromURL(url)
		}
		if _, err := os.Stat(dest); err == nil {
			dest = utils.RenewOutputPath(dest)
		}
		entry := utils.DownloadEntry{
			URL:        url,
			OutputPath: dest,
			TLS:        useTLS,
			Login:      login,
			Password:   password,
		}
		if err := internal.RunBatch([]utils.DownloadEntry{entry}); err != nil {
			fmt.Println()
			utils.PrintError("Encountered failed download(s)")
			os.Exit(1)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (inferred from the URL if not provided)")
	rootCmd.Flags().StringVarP(&urlListFile, "urllist", "l", "", "Path to YAML file containing URLs and output paths")
	rootCmd.Flags().BoolVar(&useTLS, "tls", false, "Connect with TLS on port 443 instead of plain TCP on port 80")
	rootCmd.Flags().StringVar(&login, "login", "", "HTTP Basic auth login")
	rootCmd.Flags().StringVar(&password, "password", "", "HTTP Basic auth password")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
}
