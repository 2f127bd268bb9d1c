package gematria

// LetterValue 返回字母值：A..Z（不区分大小写）对应 1..26，其余字符为 0
func LetterValue(r rune) int {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r-'A') + 1
	case r >= 'a' && r <= 'z':
		return int(r-'a') + 1
	}
	return 0
}

// Score 计算文本的字母值总和
// 空格、标点、数字以及非 ASCII 字符均计 0，因此整句短语可以直接当作一个字符串计算
func Score(text string) int {
	total := 0
	for _, r := range text {
		total += LetterValue(r)
	}
	return total
}
