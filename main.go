package main

import (
	"fmt"
	"os"

	"npatel/merge-csv/cmd/classify"
	"npatel/merge-csv/cmd/merge"
	"npatel/merge-csv/cmd/root"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(merge.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
