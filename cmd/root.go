package cmd

import (
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:   "teletype-to-epub",
	Short: "Build an EPUB from teletype.in chapter links",
	Long:  "Build an EPUB from a text listing of teletype.in chapter links posted by multiple uploaders",
}
