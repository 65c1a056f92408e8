package auth

import (
	"math/rand"

	"golang.org/x/crypto/bcrypt"
)

const tempPasswordChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TempPasswordLength matches the length of system-issued credentials for
// accounts created on someone's behalf (managers, coaches, players).
const TempPasswordLength = 8

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateTempPassword returns a random alphanumeric credential. It is
// returned to the caller exactly once; only its bcrypt hash is persisted.
func GenerateTempPassword() string {
	buf := make([]byte, TempPasswordLength)
	for i := range buf {
		buf[i] = tempPasswordChars[rand.Intn(len(tempPasswordChars))]
	}
	return string(buf)
}
