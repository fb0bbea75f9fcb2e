package currency

// currencyKeywords maps each supported ISO 4217 code (plus the BTC/ETH
// pseudo-codes) to the spellings, symbols and plural forms that count as a
// mention of that currency. Membership in this table is the only validity
// proof the detector uses.
var currencyKeywords = map[string][]string{
	"USD": {"usd", "dollar", "dollars", "$", "us dollar", "us dollars", "american dollar"},
	"EUR": {"eur", "euro", "euros", "€"},
	"GBP": {"gbp", "pound", "pounds", "£", "british pound", "sterling"},
	"JPY": {"jpy", "yen", "¥", "japanese yen"},
	"CHF": {"chf", "franc", "francs", "swiss franc"},
	"CAD": {"cad", "canadian dollar", "canadian dollars", "c$"},
	"AUD": {"aud", "australian dollar", "australian dollars", "a$"},
	"NZD": {"nzd", "new zealand dollar", "nz dollar"},
	"CNY": {"cny", "yuan", "renminbi", "rmb", "chinese yuan"},
	"INR": {"inr", "rupee", "rupees", "₹", "indian rupee"},
	"KRW": {"krw", "won", "₩", "korean won"},
	"RUB": {"rub", "ruble", "rubles", "₽", "russian ruble"},
	"BRL": {"brl", "real", "r$", "brazilian real"},
	"ZAR": {"zar", "rand", "south african rand"},
	"SEK": {"sek", "krona", "kronor", "swedish krona"},
	"NOK": {"nok", "norwegian krone", "norwegian kroner"},
	"DKK": {"dkk", "danish krone", "danish kroner"},
	"SGD": {"sgd", "singapore dollar", "s$"},
	"HKD": {"hkd", "hong kong dollar", "hk$"},
	"MXN": {"mxn", "peso", "pesos", "mexican peso"},
	"THB": {"thb", "baht", "฿", "thai baht"},
	"MYR": {"myr", "ringgit", "malaysian ringgit"},
	"PHP": {"php", "philippine peso", "₱"},
	"IDR": {"idr", "rupiah", "indonesian rupiah"},
	"PLN": {"pln", "zloty", "polish zloty"},
	"TRY": {"try", "₺", "lira", "turkish lira"},
	"AED": {"aed", "dirham", "uae dirham"},
	"SAR": {"sar", "riyal", "saudi riyal"},
	"ILS": {"ils", "shekel", "₪", "israeli shekel"},
	"ARS": {"ars", "argentine peso"},
	"CLP": {"clp", "chilean peso"},
	"COP": {"cop", "colombian peso"},
	"EGP": {"egp", "egyptian pound"},
	"PKR": {"pkr", "pakistani rupee"},
	"BDT": {"bdt", "taka", "bangladeshi taka"},
	"VND": {"vnd", "₫", "dong", "vietnamese dong"},
	"NGN": {"ngn", "naira", "₦", "nigerian naira"},
	"UAH": {"uah", "hryvnia", "₴", "ukrainian hryvnia"},
	"CZK": {"czk", "czech koruna", "koruna"},
	"HUF": {"huf", "forint", "hungarian forint"},
	"RON": {"ron", "leu", "romanian leu"},
	"BTC": {"btc", "bitcoin", "₿"},
	"ETH": {"eth", "ethereum", "ether"},
}

var displayNames = map[string]string{
	"USD": "US Dollar",
	"EUR": "Euro",
	"GBP": "British Pound",
	"JPY": "Japanese Yen",
	"CHF": "Swiss Franc",
	"CAD": "Canadian Dollar",
	"AUD": "Australian Dollar",
	"NZD": "New Zealand Dollar",
	"CNY": "Chinese Yuan",
	"INR": "Indian Rupee",
	"KRW": "Korean Won",
	"RUB": "Russian Ruble",
	"BRL": "Brazilian Real",
	"ZAR": "South African Rand",
	"SEK": "Swedish Krona",
	"NOK": "Norwegian Krone",
	"DKK": "Danish Krone",
	"SGD": "Singapore Dollar",
	"HKD": "Hong Kong Dollar",
	"MXN": "Mexican Peso",
	"THB": "Thai Baht",
	"MYR": "Malaysian Ringgit",
	"PHP": "Philippine Peso",
	"IDR": "Indonesian Rupiah",
	"PLN": "Polish Zloty",
	"TRY": "Turkish Lira",
	"AED": "UAE Dirham",
	"SAR": "Saudi Riyal",
	"ILS": "Israeli Shekel",
	"ARS": "Argentine Peso",
	"CLP": "Chilean Peso",
	"COP": "Colombian Peso",
	"EGP": "Egyptian Pound",
	"PKR": "Pakistani Rupee",
	"BDT": "Bangladeshi Taka",
	"VND": "Vietnamese Dong",
	"NGN": "Nigerian Naira",
	"UAH": "Ukrainian Hryvnia",
	"CZK": "Czech Koruna",
	"HUF": "Hungarian Forint",
	"RON": "Romanian Leu",
	"BTC": "Bitcoin",
	"ETH": "Ethereum",
}

// DisplayName returns the human-readable name for a currency code, or the
// code itself if unknown.
func DisplayName(code string) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	return code
}
