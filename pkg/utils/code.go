package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	AdminCodePrefix    = "A"
	EmployeeCodePrefix = "E"
)

var codeSpace = big.NewInt(100000)

// GenerateEmployeeCode returns prefix followed by five random digits, e.g. E04217.
func GenerateEmployeeCode(prefix string) (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%05d", prefix, n.Int64()), nil
}
