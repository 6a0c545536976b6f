/*
Package randx provides functions for generating cryptographically secure random samples and unique identifiers.

It is primarily used to build the fixed pseudo catalog, draw candidate pseudo
proposals from it, and generate session IDs for connection logging.
*/
package randx

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

const (
	// PseudoPrefix is the common prefix of every catalog pseudo.
	PseudoPrefix = "Pseudo"

	// CatalogSize is the number of pre-generated pseudos in the catalog.
	CatalogSize = 50

	// ProposalCount is how many candidate pseudos a connect command proposes.
	ProposalCount = 10
)

// PseudoCatalog returns the fixed catalog of candidate pseudos,
// PseudoPrefix followed by 1..CatalogSize.
func PseudoCatalog() []string {
	catalog := make([]string, 0, CatalogSize)
	for i := 1; i <= CatalogSize; i++ {
		catalog = append(catalog, fmt.Sprintf("%s%d", PseudoPrefix, i))
	}
	return catalog
}

// Sample draws up to n elements from pool, uniformly and without replacement,
// using a cryptographically secure random number generator (crypto/rand).
// The pool slice is not modified. When the pool holds fewer than n elements,
// every element is returned (in random order).
func Sample(pool []string, n int) ([]string, error) {
	scratch := make([]string, len(pool))
	copy(scratch, pool)

	if n > len(scratch) {
		n = len(scratch)
	}

	// partial Fisher-Yates: position i receives a random element of scratch[i:]
	for i := 0; i < n; i++ {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(scratch)-i)))
		if err != nil {
			return nil, fmt.Errorf("failed to generate random index for sample: %v", err)
		}
		k := i + int(j.Int64())
		scratch[i], scratch[k] = scratch[k], scratch[i]
	}

	return scratch[:n], nil
}

// SessionID generates a standard UUID v4 string to serve as a unique identifier
// for a client connection in logs.
func SessionID() string {
	return uuid.New().String()
}
