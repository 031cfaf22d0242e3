// Command sweepbot enters sweepstake campaigns on behalf of a
// logged-in user.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
