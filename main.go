package main

import "github.com/LegacyCodeHQ/i18nscan/cmd"

func main() {
	cmd.Execute()
}
