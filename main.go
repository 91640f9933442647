package main

import "github.com/Leonard1379/MyDjangoProject/cmd"

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cmd.SetVersionInfo(version, commit)
	cmd.Execute()
}
