package domain

import "fmt"

const FailureMessage = "Error extracting PDF"

// Extraction is a decoded /extract reply. Degraded marks a success reply
// whose body could not be read as a chunk list and was replaced by an empty
// one.
type Extraction struct {
	Chunks   []string
	Degraded bool
}

func SuccessMessage(chunks int) string {
	return fmt.Sprintf("PDF extracted (%d chunks)", chunks)
}
