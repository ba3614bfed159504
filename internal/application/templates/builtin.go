package templates

import "wedding-backend/internal/domain"

// Builtin is a hardcoded fallback message. It never carries an image.
type Builtin struct {
	Subject  string
	Greeting string
	Body     string
	CTA      string
}

type languagePack struct {
	Invitation   Builtin
	Reminder     Builtin
	Confirmation Builtin
}

// BuiltinFor returns the fallback for (language, type). Unknown languages get Spanish.
func BuiltinFor(lang domain.Language, typ domain.MessageType) Builtin {
	pack := packFor(lang)
	switch typ {
	case domain.MessageReminder:
		return pack.Reminder
	case domain.MessageConfirmation:
		return pack.Confirmation
	default:
		return pack.Invitation
	}
}

func packFor(lang domain.Language) languagePack {
	switch lang {
	case domain.LanguageEN:
		return english
	case domain.LanguageFR:
		return french
	case domain.LanguageIT:
		return italian
	case domain.LanguageDE:
		return german
	case domain.LanguageES:
		return spanish
	}
	return spanish
}

var spanish = languagePack{
	Invitation: Builtin{
		Subject:  "{{coupleNames}} se casan",
		Greeting: "Querida familia {{familyName}},",
		Body:     "Nos encantaría que nos acompañarais el {{weddingDate}} a las {{weddingTime}} en {{location}}.\nPor favor, confirmad vuestra asistencia antes del {{rsvpCutoffDate}}.",
		CTA:      "Confirmar asistencia",
	},
	Reminder: Builtin{
		Subject:  "Recordatorio: boda de {{coupleNames}}",
		Greeting: "Hola, familia {{familyName}}:",
		Body:     "Todavía no hemos recibido vuestra respuesta para la boda de {{coupleNames}} el {{weddingDate}}.\nEl plazo para confirmar termina el {{rsvpCutoffDate}}.",
		CTA:      "Responder ahora",
	},
	Confirmation: Builtin{
		Subject:  "Hemos recibido vuestra respuesta",
		Greeting: "Gracias, familia {{familyName}}.",
		Body:     "Hemos registrado vuestra respuesta para la boda de {{coupleNames}} el {{weddingDate}} en {{location}}.\nPodéis cambiarla hasta el {{rsvpCutoffDate}}.",
		CTA:      "Ver mi respuesta",
	},
}

var english = languagePack{
	Invitation: Builtin{
		Subject:  "{{coupleNames}} are getting married",
		Greeting: "Dear {{familyName}} family,",
		Body:     "We would love you to join us on {{weddingDate}} at {{weddingTime}} at {{location}}.\nPlease let us know if you can make it by {{rsvpCutoffDate}}.",
		CTA:      "RSVP now",
	},
	Reminder: Builtin{
		Subject:  "Reminder: {{coupleNames}}'s wedding",
		Greeting: "Hello {{familyName}} family,",
		Body:     "We haven't received your reply for {{coupleNames}}'s wedding on {{weddingDate}} yet.\nReplies close on {{rsvpCutoffDate}}.",
		CTA:      "Reply now",
	},
	Confirmation: Builtin{
		Subject:  "We got your RSVP",
		Greeting: "Thank you, {{familyName}} family.",
		Body:     "Your reply for {{coupleNames}}'s wedding on {{weddingDate}} at {{location}} has been saved.\nYou can change it until {{rsvpCutoffDate}}.",
		CTA:      "View my reply",
	},
}

var french = languagePack{
	Invitation: Builtin{
		Subject:  "{{coupleNames}} se marient",
		Greeting: "Chère famille {{familyName}},",
		Body:     "Nous serions ravis de vous compter parmi nous le {{weddingDate}} à {{weddingTime}} à {{location}}.\nMerci de confirmer votre présence avant le {{rsvpCutoffDate}}.",
		CTA:      "Confirmer ma présence",
	},
	Reminder: Builtin{
		Subject:  "Rappel : mariage de {{coupleNames}}",
		Greeting: "Bonjour famille {{familyName}},",
		Body:     "Nous n'avons pas encore reçu votre réponse pour le mariage de {{coupleNames}} le {{weddingDate}}.\nLes réponses sont closes le {{rsvpCutoffDate}}.",
		CTA:      "Répondre maintenant",
	},
	Confirmation: Builtin{
		Subject:  "Nous avons bien reçu votre réponse",
		Greeting: "Merci, famille {{familyName}}.",
		Body:     "Votre réponse pour le mariage de {{coupleNames}} le {{weddingDate}} à {{location}} est enregistrée.\nVous pouvez la modifier jusqu'au {{rsvpCutoffDate}}.",
		CTA:      "Voir ma réponse",
	},
}

var italian = languagePack{
	Invitation: Builtin{
		Subject:  "{{coupleNames}} si sposano",
		Greeting: "Cara famiglia {{familyName}},",
		Body:     "Saremmo felici di avervi con noi il {{weddingDate}} alle {{weddingTime}} a {{location}}.\nVi preghiamo di confermare entro il {{rsvpCutoffDate}}.",
		CTA:      "Conferma la presenza",
	},
	Reminder: Builtin{
		Subject:  "Promemoria: matrimonio di {{coupleNames}}",
		Greeting: "Ciao famiglia {{familyName}},",
		Body:     "Non abbiamo ancora ricevuto la vostra risposta per il matrimonio di {{coupleNames}} del {{weddingDate}}.\nLe risposte si chiudono il {{rsvpCutoffDate}}.",
		CTA:      "Rispondi ora",
	},
	Confirmation: Builtin{
		Subject:  "Abbiamo ricevuto la vostra risposta",
		Greeting: "Grazie, famiglia {{familyName}}.",
		Body:     "La vostra risposta per il matrimonio di {{coupleNames}} del {{weddingDate}} a {{location}} è stata registrata.\nPotete modificarla fino al {{rsvpCutoffDate}}.",
		CTA:      "Vedi la mia risposta",
	},
}

var german = languagePack{
	Invitation: Builtin{
		Subject:  "{{coupleNames}} heiraten",
		Greeting: "Liebe Familie {{familyName}},",
		Body:     "Wir würden uns freuen, euch am {{weddingDate}} um {{weddingTime}} in {{location}} zu sehen.\nBitte gebt uns bis zum {{rsvpCutoffDate}} Bescheid.",
		CTA:      "Jetzt zusagen",
	},
	Reminder: Builtin{
		Subject:  "Erinnerung: Hochzeit von {{coupleNames}}",
		Greeting: "Hallo Familie {{familyName}},",
		Body:     "Wir haben noch keine Antwort von euch zur Hochzeit von {{coupleNames}} am {{weddingDate}} erhalten.\nAntworten sind bis zum {{rsvpCutoffDate}} möglich.",
		CTA:      "Jetzt antworten",
	},
	Confirmation: Builtin{
		Subject:  "Eure Antwort ist angekommen",
		Greeting: "Danke, Familie {{familyName}}.",
		Body:     "Eure Antwort zur Hochzeit von {{coupleNames}} am {{weddingDate}} in {{location}} wurde gespeichert.\nIhr könnt sie bis zum {{rsvpCutoffDate}} ändern.",
		CTA:      "Meine Antwort ansehen",
	},
}
