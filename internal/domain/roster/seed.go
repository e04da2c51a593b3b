package roster

// Seed returns the default roster used when a dashboard session starts
// without injected records. The eight rows span every workflow status
// and define the full default display surface for exploratory testing.
func Seed() []Patient {
	return []Patient{
		{ID: 1, Name: "Akpopodion Endurance", PatientID: "HOSP29384756", Gender: GenderMale, Age: "21yrs", IsNew: true, Clinic: "Neurology", ClinicBadge: "+1", WalletBalance: 120000, Time: "11:30 AM", Date: "22 Sep 2025", Status: StatusProcessing, AvatarColor: "bg-blue-200"},
		{ID: 2, Name: "Boluwatife Olusola", PatientID: "HOSP87654321", Gender: GenderFemale, Age: "30yrs", IsNew: true, Clinic: "Ear, Nose & Throat", WalletBalance: 230500, Time: "05:30 PM", Date: "22 Sep 2025", Status: StatusNotArrived, AvatarColor: "bg-green-200"},
		{ID: 3, Name: "Arlie Mertz", PatientID: "HOSP76354892", Gender: GenderFemale, Age: "23days", IsNew: true, Clinic: "Neurology", WalletBalance: 90000, Time: "03:45 PM", Date: "22 Sep 2025", Status: StatusAwaitingVitals, AvatarColor: "bg-gray-200"},
		{ID: 4, Name: "Akuchi Amadi", PatientID: "HOSP98765432", Gender: GenderFemale, Age: "11mths", IsNew: false, Clinic: "Accident & Emergency", WalletBalance: 100000, Time: "02:00 PM", Date: "22 Sep 2025", Status: StatusNotArrived, AvatarColor: "bg-yellow-200"},
		{ID: 5, Name: "Omolola Bakare", PatientID: "HOSP23456789", Gender: GenderFemale, Age: "26yrs", IsNew: false, Clinic: "Accident & Emergency", WalletBalance: 180000, Time: "01:15 PM", Date: "22 Sep 2025", Status: StatusAwaitingDoctor, AvatarColor: "bg-pink-200"},
		{ID: 6, Name: "Ayobami Musa", PatientID: "HOSP34567890", Gender: GenderFemale, Age: "11mths", IsNew: false, Clinic: "Accident & Emergency", WalletBalance: 190000, Time: "12:45 PM", Date: "22 Sep 2025", Status: StatusAdmitted, AvatarColor: "bg-indigo-200"},
		{ID: 7, Name: "Ngozi Okeke", PatientID: "HOSP45678901", Gender: GenderFemale, Age: "11mths", IsNew: false, Clinic: "Accident & Emergency", WalletBalance: 200000, Time: "10:00 AM", Date: "22 Sep 2025", Status: StatusTransferredAE, AvatarColor: "bg-purple-200"},
		{ID: 8, Name: "Chinwe Azikiwe", PatientID: "HOSP56789012", Gender: GenderFemale, Age: "11mths", IsNew: false, Clinic: "Accident & Emergency", WalletBalance: 210000, Time: "08:00 AM", Date: "22 Sep 2025", Status: StatusSeenDoctor, AvatarColor: "bg-red-200"},
	}
}
