package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	&SysOpr{},
	&SysOprLog{},
	// Content
	&Category{},
	&CmsService{},
	&Product{},
	&AboutBlock{},
	// Media
	&Video{},
	&Photo{},
	// Messaging
	&ContactMessage{},
}
