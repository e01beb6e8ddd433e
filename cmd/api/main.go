package main

// @title Drive RAG API
// @version 1.0
// @description Sync Google Drive files into a Gemini File Search store and chat with them.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8000
// @BasePath /
// @schemes http
import (
	"os"

	_ "drive-rag/docs"
	protocol "drive-rag/protocal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts protocol.Options

	cmd := &cobra.Command{
		Use:           "drive-rag",
		Short:         "Drive RAG agent backend",
		Long:          "Serves the HTTP API that syncs Google Drive files into a Gemini File Search store and answers questions about them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return protocol.ServeHTTP(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Env, "env", "", "the environment to use")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "./configs", "directory holding config.yaml")

	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.Println(err)
		os.Exit(1)
	}
}
