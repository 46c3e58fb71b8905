package seed

// countries is the ISO 3166-1 subset offered by the country combo.
var countries = [][2]string{
	{"AE", "United Arab Emirates"},
	{"AR", "Argentina"},
	{"AU", "Australia"},
	{"BD", "Bangladesh"},
	{"BE", "Belgium"},
	{"BR", "Brazil"},
	{"CA", "Canada"},
	{"CH", "Switzerland"},
	{"CL", "Chile"},
	{"CN", "China"},
	{"DE", "Germany"},
	{"DK", "Denmark"},
	{"EG", "Egypt"},
	{"ES", "Spain"},
	{"FR", "France"},
	{"GB", "United Kingdom"},
	{"GH", "Ghana"},
	{"HK", "Hong Kong"},
	{"ID", "Indonesia"},
	{"IN", "India"},
	{"IT", "Italy"},
	{"JP", "Japan"},
	{"KE", "Kenya"},
	{"KR", "South Korea"},
	{"LK", "Sri Lanka"},
	{"MX", "Mexico"},
	{"MY", "Malaysia"},
	{"NG", "Nigeria"},
	{"NL", "Netherlands"},
	{"NP", "Nepal"},
	{"NZ", "New Zealand"},
	{"OM", "Oman"},
	{"PH", "Philippines"},
	{"PK", "Pakistan"},
	{"PL", "Poland"},
	{"QA", "Qatar"},
	{"RU", "Russia"},
	{"SA", "Saudi Arabia"},
	{"SE", "Sweden"},
	{"SG", "Singapore"},
	{"TH", "Thailand"},
	{"TR", "Turkey"},
	{"TZ", "Tanzania"},
	{"US", "United States"},
	{"VN", "Vietnam"},
	{"ZA", "South Africa"},
}
