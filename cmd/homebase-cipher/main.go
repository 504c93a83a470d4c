// README: Helper to produce the encrypted home-base address for the env config.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"overlook/internal/secrets"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: homebase-cipher <address...>")
		os.Exit(2)
	}
	out, err := secrets.EncryptHomeBase(strings.Join(os.Args[1:], " "))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("OVERLOOK_HOME_BASE_CIPHER=%s\n", out)
}
