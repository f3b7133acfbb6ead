package main

import "github.com/mohamedsilima53-droid/Tanzania-qol-predictor/cmd"

func main() {
	cmd.Execute()
}
