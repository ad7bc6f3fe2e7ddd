package util

import "regexp"

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z ]+$`)
)

// IsValidEmail 邮箱格式检查
func IsValidEmail(email string) bool {
	return email != "" && emailRe.MatchString(email)
}

// IsValidName 姓名只允许字母和空格
func IsValidName(name string) bool {
	return name != "" && nameRe.MatchString(name)
}
