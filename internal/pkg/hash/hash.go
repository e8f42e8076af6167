package hash

import "golang.org/x/crypto/bcrypt"

// bcryptCost - стоимость хеширования паролей
// Подобрана так, чтобы проверка занимала ~250мс на типовом сервере
const bcryptCost = 12

// HashPassword хеширует пароль через bcrypt
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword проверяет пароль против сохраненного хеша
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
