package main

import (
	"log"
	"os"

	"statvalue-backend/pkg/samplegen"
)

func main() {
	if err := samplegen.Execute(os.Args[1:]); err != nil {
		log.Fatalf("sample generation failed: %v", err)
	}
}
