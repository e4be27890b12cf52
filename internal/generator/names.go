package generator

// Default name pools used when the spec file does not supply a [names]
// section. Vietnamese names matching the target institution's locale.

var defaultLastNames = []string{
	"Nguyễn", "Trần", "Lê", "Phạm", "Hoàng", "Huỳnh", "Phan", "Vũ",
	"Võ", "Đặng", "Bùi", "Đỗ", "Hồ", "Ngô", "Dương", "Lý",
	"Đào", "Đinh", "Lâm", "Trương", "Lưu", "Mai", "Tạ", "Cao",
}

var defaultMaleFirstNames = []string{
	"Minh", "Hùng", "Dũng", "Anh", "Tuấn", "Quang", "Hải", "Nam",
	"Long", "Khoa", "Phúc", "Thành", "Đạt", "Bình", "Cường", "Đức",
	"Hiếu", "Khánh", "Kiên", "Lâm", "Phong", "Sơn", "Thắng", "Trung",
	"Việt", "Vinh", "Bảo", "Duy", "Huy", "Khang", "Nhân", "Tài",
}

var defaultFemaleFirstNames = []string{
	"Linh", "Hương", "Lan", "Mai", "Hoa", "Thảo", "Ngọc", "Hà",
	"Phương", "Trang", "Anh", "Chi", "Diệp", "Giang", "Hạnh", "Hiền",
	"Huệ", "Khánh", "Loan", "My", "Nga", "Nhung", "Oanh", "Quỳnh",
	"Thanh", "Thu", "Thúy", "Trâm", "Tuyết", "Vân", "Xuân", "Yến",
}

var defaultMiddleParticles = map[string][]string{
	"male":   {"Văn", "Hữu", "Đức", "Quang", "Minh", "Công"},
	"female": {"Thị", "Ngọc", "Thu", "Kim", "Hồng", "Mỹ"},
}

// namePools bundles the pools actually used by a run.
type namePools struct {
	Last   []string
	Male   []string
	Female []string
	Middle map[string][]string
}

func defaultNamePools() namePools {
	return namePools{
		Last:   defaultLastNames,
		Male:   defaultMaleFirstNames,
		Female: defaultFemaleFirstNames,
		Middle: defaultMiddleParticles,
	}
}
