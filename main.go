// RepoLens inspects local git repositories and reports working-tree status
// and recent commit history, as a Go package and over HTTP.
package main

import "github.com/repolens/repolens/internal"

func main() {
	internal.Run()
}
