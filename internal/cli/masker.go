package cli

import "regexp"

var secretKeyPattern = regexp.MustCompile(`(?i)(TOKEN|SECRET|PASSWORD|PASSWD|CREDENTIAL|API_?KEY|PRIVATE_?KEY)`)

// MaskValue는 비밀값으로 보이는 키의 값을 마스킹한다.
// 앞 4글자만 남기고 나머지는 ****로 바꾼다. 짧은 값은 전부 가린다.
func MaskValue(key, value string) string {
	if !secretKeyPattern.MatchString(key) || value == "" {
		return value
	}
	r := []rune(value)
	if len(r) <= 8 {
		return "****"
	}
	return string(r[:4]) + "****"
}
