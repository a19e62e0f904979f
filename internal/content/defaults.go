// AngelaMos | 2026
// defaults.go

package content

var defaultAllergies = []Allergy{
	{ID: "allergy_1", Name: "Peanuts", Category: "Food", Severity: SeverityHigh},
	{ID: "allergy_2", Name: "Tree Nuts", Category: "Food", Severity: SeverityHigh},
	{ID: "allergy_3", Name: "Milk", Category: "Food", Severity: SeverityMedium},
	{ID: "allergy_4", Name: "Eggs", Category: "Food", Severity: SeverityMedium},
	{ID: "allergy_5", Name: "Wheat (Gluten)", Category: "Food", Severity: SeverityMedium},
	{ID: "allergy_6", Name: "Soy", Category: "Food", Severity: SeverityLow},
	{ID: "allergy_7", Name: "Fish", Category: "Food", Severity: SeverityHigh},
	{ID: "allergy_8", Name: "Shellfish", Category: "Food", Severity: SeverityHigh},
	{ID: "allergy_9", Name: "Penicillin", Category: "Medication", Severity: SeverityHigh},
	{ID: "allergy_10", Name: "Aspirin", Category: "Medication", Severity: SeverityMedium},
	{ID: "allergy_11", Name: "Ibuprofen", Category: "Medication", Severity: SeverityMedium},
	{ID: "allergy_12", Name: "Sulfa Drugs", Category: "Medication", Severity: SeverityHigh},
	{ID: "allergy_13", Name: "Latex", Category: "Environmental", Severity: SeverityMedium},
	{ID: "allergy_14", Name: "Dust Mites", Category: "Environmental", Severity: SeverityLow},
	{ID: "allergy_15", Name: "Pollen", Category: "Environmental", Severity: SeverityLow},
	{ID: "allergy_16", Name: "Pet Dander", Category: "Environmental", Severity: SeverityLow},
	{ID: "allergy_17", Name: "Insect Stings", Category: "Environmental", Severity: SeverityHigh},
}

var defaultConditions = []Condition{
	{ID: "condition_1", Name: "Diabetes Type 1", Category: "Metabolic", Critical: true},
	{ID: "condition_2", Name: "Diabetes Type 2", Category: "Metabolic", Critical: true},
	{ID: "condition_3", Name: "Hypertension", Category: "Cardiovascular", Critical: true},
	{ID: "condition_4", Name: "Heart Disease", Category: "Cardiovascular", Critical: true},
	{ID: "condition_5", Name: "Asthma", Category: "Respiratory", Critical: true},
	{ID: "condition_6", Name: "COPD", Category: "Respiratory", Critical: true},
	{ID: "condition_7", Name: "Epilepsy", Category: "Neurological", Critical: true},
	{ID: "condition_8", Name: "Alzheimer's", Category: "Neurological", Critical: true},
	{ID: "condition_9", Name: "Parkinson's", Category: "Neurological", Critical: true},
	{ID: "condition_10", Name: "Arthritis", Category: "Musculoskeletal", Critical: false},
	{ID: "condition_11", Name: "Thyroid Disorder", Category: "Endocrine", Critical: false},
	{ID: "condition_12", Name: "Kidney Disease", Category: "Renal", Critical: true},
	{ID: "condition_13", Name: "Liver Disease", Category: "Hepatic", Critical: true},
	{ID: "condition_14", Name: "Cancer", Category: "Oncology", Critical: true},
}

var defaultFAQs = []FAQ{
	{
		ID:       "faq_1",
		Question: "How do I register my Vayu Band?",
		Answer:   "Go to the Bands section in the app and click on \"Register Band\". Enter the serial number from your band and follow the verification steps.",
		Category: "Bands",
	},
	{
		ID:       "faq_2",
		Question: "How do I link a band to a family member?",
		Answer:   "After registering a band, go to the Bands page, find the unlinked band, and click \"Link Member\". Select the family member you want to link.",
		Category: "Bands",
	},
	{
		ID:       "faq_3",
		Question: "What happens when someone scans my band?",
		Answer:   "They will see the public profile information you've chosen to share, including emergency contacts and any medical information marked as public.",
		Category: "Privacy",
	},
	{
		ID:       "faq_4",
		Question: "Can I control what information is visible?",
		Answer:   "Yes! Each family member's profile has privacy settings where you can choose exactly what information is visible when the band is scanned.",
		Category: "Privacy",
	},
	{
		ID:       "faq_5",
		Question: "How do I add emergency contacts?",
		Answer:   "When adding or editing a family member, scroll to the Emergency Contacts section. You can add up to 3 emergency contacts with their name, phone, and relation.",
		Category: "Profile",
	},
	{
		ID:       "faq_6",
		Question: "What subscription plans are available?",
		Answer:   "We offer Individual (1 member) and Family (4 members) plans. Both include band linking, privacy controls, and 1-year validity.",
		Category: "Subscription",
	},
}
