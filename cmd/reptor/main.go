// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

// This is the main entry of the reptor CLI tool. There isn't actually much
// here to do except for loading the plugins and then running the reptor
// "root" command which will parse the CLI args and then hopefully invoke the
// correct plugin.

package main

import (
	"os"

	// Pull in all packages which define compiled-in plugins: they will
	// register themselves as needed, but we need the packages to get included,
	// as otherwise there are no references in the code which could pull them
	// in anyway.
	"github.com/syn-4ck/reptor/cli/command"
	_ "github.com/syn-4ck/reptor/plugins/core"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

func main() {
	// Establish logger output format in case we're hitting errors, et cetera.
	f := new(prefixed.TextFormatter)
	f.DisableColors = true
	f.ForceFormatting = true
	f.FullTimestamp = true
	f.TimestampFormat = "15:04:05"
	log.SetFormatter(f)

	rootCmd, err := command.SetupCLI(os.Args[1:])
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
	// This is cobra boilerplate documentation, except for the missing call to
	// fmt.Println(err) which in cobra's boilerplate is just plain wrong:
	// it renders the error message twice, see also:
	// https://github.com/spf13/cobra/issues/304
	err = rootCmd.Execute()
	command.Shutdown()
	if err != nil {
		os.Exit(1)
	}
}
