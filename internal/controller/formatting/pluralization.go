package formatting

// pluralize выбирает форму слова для числа: one (1, 21), few (2-4, 22-24), many (остальное)
func pluralize(count int, one, few, many string) string {
	if count < 0 {
		count = -count
	}
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeStudents возвращает правильное склонение слова "студент"
func PluralizeStudents(count int) string {
	return pluralize(count, "студент", "студента", "студентов")
}

// PluralizeEntries возвращает правильное склонение слова "запись"
func PluralizeEntries(count int) string {
	return pluralize(count, "запись", "записи", "записей")
}

// PluralizePlans возвращает правильное склонение слова "план"
func PluralizePlans(count int) string {
	return pluralize(count, "план", "плана", "планов")
}
