package catalog

import "github.com/lemove/lemove/sim"

// providers is the built-in catalog, grouped by category.
var providers = []Provider{
	// Banks
	{ID: "nordlb", Name: "NORD/LB", Category: sim.CategoryAccounts, Domain: "nordlb.de"},
	{ID: "sparkasse", Name: "Sparkasse", Category: sim.CategoryAccounts, Domain: "sparkasse.de"},
	{ID: "dkb", Name: "DKB", Category: sim.CategoryAccounts, Domain: "dkb.de"},
	{ID: "ing", Name: "ING", Category: sim.CategoryAccounts, Domain: "ing.de"},
	{ID: "deutschebank", Name: "Deutsche Bank", Category: sim.CategoryAccounts, Domain: "deutsche-bank.de"},
	{ID: "commerzbank", Name: "Commerzbank", Category: sim.CategoryAccounts, Domain: "commerzbank.de"},
	{ID: "hypovereinsbank", Name: "HypoVereinsbank", Category: sim.CategoryAccounts, Domain: "hypovereinsbank.de"},
	{ID: "n26", Name: "N26", Category: sim.CategoryAccounts, Domain: "n26.com"},
	{ID: "targobank", Name: "Targobank", Category: sim.CategoryAccounts, Domain: "targobank.de"},
	{ID: "postbank", Name: "Postbank", Category: sim.CategoryAccounts, Domain: "postbank.de"},
	{ID: "comdirect", Name: "comdirect", Category: sim.CategoryAccounts, Domain: "comdirect.de"},
	{ID: "santander", Name: "Santander", Category: sim.CategoryAccounts, Domain: "santander.de"},
	{ID: "bbbank", Name: "BBBank", Category: sim.CategoryAccounts, Domain: "bbbank.de"},
	{ID: "gls", Name: "GLS Bank", Category: sim.CategoryAccounts, Domain: "gls.de"},
	{ID: "psd", Name: "PSD Bank", Category: sim.CategoryAccounts, Domain: "psd-bank.de"},
	{ID: "sparda", Name: "Sparda-Bank", Category: sim.CategoryAccounts, Domain: "sparda.de"},
	{ID: "consorsbank", Name: "Consorsbank", Category: sim.CategoryAccounts, Domain: "consorsbank.de"},
	{ID: "revolut", Name: "Revolut", Category: sim.CategoryAccounts, Domain: "revolut.com"},
	{ID: "bunq", Name: "bunq", Category: sim.CategoryAccounts, Domain: "bunq.com"},
	{ID: "wise", Name: "Wise", Category: sim.CategoryAccounts, Domain: "wise.com"},

	// Insurers and health funds
	{ID: "tk", Name: "Techniker Krankenkasse", Category: sim.CategoryInsurance, Domain: "tk.de"},
	{ID: "aok", Name: "AOK", Category: sim.CategoryInsurance, Domain: "aok.de"},
	{ID: "dak", Name: "DAK-Gesundheit", Category: sim.CategoryInsurance, Domain: "dak.de"},
	{ID: "barmer", Name: "Barmer", Category: sim.CategoryInsurance, Domain: "barmer.de"},
	{ID: "huk", Name: "HUK-COBURG", Category: sim.CategoryInsurance, Domain: "huk.de"},
	{ID: "allianz", Name: "Allianz", Category: sim.CategoryInsurance, Domain: "allianz.de"},
	{ID: "axa", Name: "AXA", Category: sim.CategoryInsurance, Domain: "axa.de"},
	{ID: "debeka", Name: "Debeka", Category: sim.CategoryInsurance, Domain: "debeka.de"},
	{ID: "ruv", Name: "R+V", Category: sim.CategoryInsurance, Domain: "ruv.de"},
	{ID: "signaliduna", Name: "SIGNAL IDUNA", Category: sim.CategoryInsurance, Domain: "signal-iduna.de"},
	{ID: "ergo", Name: "ERGO", Category: sim.CategoryInsurance, Domain: "ergo.de"},
	{ID: "generali", Name: "Generali", Category: sim.CategoryInsurance, Domain: "generali.de"},
	{ID: "gothaer", Name: "Gothaer", Category: sim.CategoryInsurance, Domain: "gothaer.de"},
	{ID: "provinzial", Name: "Provinzial", Category: sim.CategoryInsurance, Domain: "provinzial.de"},
	{ID: "lvm", Name: "LVM", Category: sim.CategoryInsurance, Domain: "lvm.de"},
	{ID: "hansemerkur", Name: "HanseMerkur", Category: sim.CategoryInsurance, Domain: "hansemerkur.de"},
	{ID: "ikkclassic", Name: "IKK classic", Category: sim.CategoryInsurance, Domain: "ikk-classic.de"},
	{ID: "hek", Name: "HEK", Category: sim.CategoryInsurance, Domain: "hek.de"},
	{ID: "kkh", Name: "KKH", Category: sim.CategoryInsurance, Domain: "kkh.de"},

	// Subscriptions and streaming
	{ID: "netflix", Name: "Netflix", Category: sim.CategorySubscriptions, Domain: "netflix.com"},
	{ID: "spotify", Name: "Spotify", Category: sim.CategorySubscriptions, Domain: "spotify.com"},
	{ID: "disney", Name: "Disney+", Category: sim.CategorySubscriptions, Domain: "disneyplus.com"},
	{ID: "prime", Name: "Amazon Prime", Category: sim.CategorySubscriptions, Domain: "amazon.de"},
	{ID: "dazn", Name: "DAZN", Category: sim.CategorySubscriptions, Domain: "dazn.com"},
	{ID: "audible", Name: "Audible", Category: sim.CategorySubscriptions, Domain: "audible.de"},
	{ID: "dropbox", Name: "Dropbox", Category: sim.CategorySubscriptions, Domain: "dropbox.com"},
	{ID: "icloud", Name: "iCloud", Category: sim.CategorySubscriptions, Domain: "icloud.com"},
	{ID: "applemusic", Name: "Apple Music", Category: sim.CategorySubscriptions, Domain: "apple.com"},
	{ID: "youtube", Name: "YouTube Premium", Category: sim.CategorySubscriptions, Domain: "youtube.com"},
	{ID: "microsoft365", Name: "Microsoft 365", Category: sim.CategorySubscriptions, Domain: "microsoft.com"},
	{ID: "googleone", Name: "Google One", Category: sim.CategorySubscriptions, Domain: "google.com"},
	{ID: "adobe", Name: "Adobe", Category: sim.CategorySubscriptions, Domain: "adobe.com"},
	{ID: "playstation", Name: "PlayStation Plus", Category: sim.CategorySubscriptions, Domain: "playstation.com"},
	{ID: "xbox", Name: "Xbox Game Pass", Category: sim.CategorySubscriptions, Domain: "xbox.com"},
	{ID: "nintendo", Name: "Nintendo Switch Online", Category: sim.CategorySubscriptions, Domain: "nintendo.com"},
	{ID: "sky", Name: "Sky", Category: sim.CategorySubscriptions, Domain: "sky.de"},
	{ID: "waipu", Name: "waipu.tv", Category: sim.CategorySubscriptions, Domain: "waipu.tv"},
	{ID: "zattoo", Name: "Zattoo", Category: sim.CategorySubscriptions, Domain: "zattoo.com"},
	{ID: "joyn", Name: "Joyn", Category: sim.CategorySubscriptions, Domain: "joyn.de"},
	{ID: "rtlplus", Name: "RTL+", Category: sim.CategorySubscriptions, Domain: "rtlplus.com"},
	{ID: "paramount", Name: "Paramount+", Category: sim.CategorySubscriptions, Domain: "paramountplus.com"},
	{ID: "deezer", Name: "Deezer", Category: sim.CategorySubscriptions, Domain: "deezer.com"},
	{ID: "bahn", Name: "Deutsche Bahn", Category: sim.CategorySubscriptions, Domain: "bahn.de"},
	{ID: "adac", Name: "ADAC", Category: sim.CategorySubscriptions, Domain: "adac.de"},

	// Telecommunications
	{ID: "telekom", Name: "Telekom", Category: sim.CategorySubscriptions, Domain: "telekom.de"},
	{ID: "vodafone", Name: "Vodafone", Category: sim.CategorySubscriptions, Domain: "vodafone.de"},
	{ID: "o2", Name: "o2", Category: sim.CategorySubscriptions, Domain: "o2online.de"},
	{ID: "1und1", Name: "1&1", Category: sim.CategorySubscriptions, Domain: "1und1.de"},
	{ID: "congstar", Name: "congstar", Category: sim.CategorySubscriptions, Domain: "congstar.de"},
	{ID: "pyur", Name: "PYUR", Category: sim.CategorySubscriptions, Domain: "pyur.com"},
	{ID: "ewe", Name: "EWE", Category: sim.CategorySubscriptions, Domain: "ewe.de"},
	{ID: "mnet", Name: "M-net", Category: sim.CategorySubscriptions, Domain: "m-net.de"},
	{ID: "netcologne", Name: "NetCologne", Category: sim.CategorySubscriptions, Domain: "netcologne.de"},
	{ID: "telecolumbus", Name: "Tele Columbus", Category: sim.CategorySubscriptions, Domain: "telecolumbus.de"},

	// Utilities
	{ID: "eon", Name: "E.ON", Category: sim.CategoryOther, Domain: "eon.de"},
	{ID: "vattenfall", Name: "Vattenfall", Category: sim.CategoryOther, Domain: "vattenfall.de"},
	{ID: "enbw", Name: "EnBW", Category: sim.CategoryOther, Domain: "enbw.com"},
	{ID: "rwe", Name: "RWE", Category: sim.CategoryOther, Domain: "rwe.com"},
	{ID: "lichtblick", Name: "LichtBlick", Category: sim.CategoryOther, Domain: "lichtblick.de"},
	{ID: "mainova", Name: "Mainova", Category: sim.CategoryOther, Domain: "mainova.de"},
	{ID: "swm", Name: "Stadtwerke München", Category: sim.CategoryOther, Domain: "swm.de"},
	{ID: "rheinenergie", Name: "RheinEnergie", Category: sim.CategoryOther, Domain: "rheinenergie.com"},
	{ID: "westenergie", Name: "Westenergie", Category: sim.CategoryOther, Domain: "westenergie.de"},
	{ID: "lew", Name: "LEW", Category: sim.CategoryOther, Domain: "lew.de"},
	{ID: "enercity", Name: "enercity", Category: sim.CategoryOther, Domain: "enercity.de"},
	{ID: "mvv", Name: "MVV Energie", Category: sim.CategoryOther, Domain: "mvv.de"},
	{ID: "swd", Name: "Stadtwerke Düsseldorf", Category: sim.CategoryOther, Domain: "swd-ag.de"},
	{ID: "new", Name: "NEW", Category: sim.CategoryOther, Domain: "new.de"},
	{ID: "stromnetzberlin", Name: "Stromnetz Berlin", Category: sim.CategoryOther, Domain: "stromnetz.berlin"},

	// Public bodies and postal services
	{ID: "rundfunk", Name: "ARD ZDF Beitragsservice", Category: sim.CategoryOther, Domain: "rundfunkbeitrag.de"},
	{ID: "deutschepost", Name: "Deutsche Post", Category: sim.CategoryOther, Domain: "deutschepost.de"},
}
