package domain

// Fixed replies of the rule set. The reply language is German.
const (
	TextGreeting       = "Ich bin Ihr Buchungsassistent. Ob Sie eine Reservierung vornehmen möchten oder eine Empfehlung für ein Hotel benötigen, ich bin hier, um Ihnen zu helfen. Was kann ich für Sie tun?"
	TextApology        = "Entschuldigung, ich bin mir nicht sicher, wie ich Ihnen dabei helfen kann."
	TextInvalidMessage = "Ungültiges Nachrichtenformat"
	TextSelectHotel    = "Bitte wählen Sie eine Unterkunft aus unserem Angebot. "
	TextAskPeople      = "Bitte geben Sie die Anzahl der Personen an."
	TextAskConfirm     = "Bitte bestätigen Sie die Buchung, indem Sie 'bestätigen' eingeben."
	TextAskCountry     = "Bitte geben Sie das Land an, für das Sie Unterkunftsempfehlungen wünschen."
)

// ConfirmToken is the token that confirms a pending booking.
const ConfirmToken = "bestätigen"
