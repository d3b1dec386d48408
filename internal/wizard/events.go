package wizard

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/samyrami/exporta-facil-bot/internal/contact"
)

// Sender identifies who produced a display event.
type Sender int

const (
	SenderBot Sender = iota
	SenderUser
)

// Event is one display item for the chat transcript. Options, when
// present, are quick replies the UI renders as selectable buttons.
type Event struct {
	Sender  Sender
	Text    string
	Options []string
}

func botEvent(text string) Event {
	return Event{Sender: SenderBot, Text: text}
}

func botEventOpts(text string, options []string) Event {
	return Event{Sender: SenderBot, Text: text, Options: options}
}

func userEvent(text string) Event {
	return Event{Sender: SenderUser, Text: text}
}

// Quick replies offered on the welcome step.
const (
	OptionStart    = "Sí, comenzar evaluación"
	OptionMoreInfo = "Necesito más información"
)

const welcomeText = `¡Hola! Soy el asistente del Termómetro Exportador, desarrollado por el Laboratorio de Comercio Internacional de la Universidad de La Sabana.

Este cuestionario te ayudará a evaluar la preparación y capacidad exportadora de tu empresa. La información que proporciones será utilizada únicamente para diagnóstico y orientación general.

El proceso incluye:
  · Recolección de datos básicos
  · Cuestionario de evaluación exportadora
  · Diagnóstico personalizado con recomendaciones

¿Estás listo para empezar?`

const moreInfoText = `El Termómetro Exportador es una herramienta de diagnóstico especializada que evalúa diferentes aspectos críticos de tu empresa:

  · Certificaciones de calidad (ISO, BPM, BPA)
  · Experiencia internacional
  · Capacidad productiva y logística
  · Recursos humanos especializados
  · Estrategia y planificación

El diagnóstico identifica fortalezas y oportunidades de mejora, y entrega recomendaciones estratégicas personalizadas como hoja de ruta para la internacionalización.

Cuando estés listo, selecciona "Sí, comenzar evaluación".`

const contactIntro = "Perfecto, comencemos recopilando tus datos de contacto."

const questionnaireIntro = `¡Excelente! Ya tengo todos tus datos de contacto.

Ahora comenzaremos con el cuestionario de evaluación exportadora. Responde cada pregunta seleccionando la opción que mejor describa la situación actual de tu empresa.`

const completionText = `¡Perfecto! Has completado todo el cuestionario.

Generando tu diagnóstico personalizado...`

// WelcomeEvents returns the opening transcript for a fresh session.
func (c *Controller) WelcomeEvents() []Event {
	return []Event{botEventOpts(welcomeText, []string{OptionStart, OptionMoreInfo})}
}

// acknowledgment returns the short reaction shown after an answer,
// keyed to the option's score tier.
func acknowledgment(score int) string {
	switch {
	case score >= 4:
		return "¡Excelente! Esa es una gran fortaleza."
	case score >= 3:
		return "¡Muy bien! Buen punto a favor."
	case score >= 2:
		return "Entendido. Hay una oportunidad de mejora ahí."
	default:
		return "Gracias por tu sinceridad. El diagnóstico te dará pautas para trabajar en ello."
	}
}

// validationMessage renders a field validation failure for the chat.
func validationMessage(err error) string {
	if verr, ok := err.(*contact.ValidationError); ok {
		return fmt.Sprintf("Ese valor no parece válido: %s. Intentémoslo de nuevo.", verr.Reason)
	}
	return "Ese valor no parece válido. Intentémoslo de nuevo."
}

// Transcript rebuilds the display history for the current state so a
// resumed session looks identical to a continuous one. Prior contact
// fields and answered questions replay in order, ending with whatever
// prompt the wizard is currently waiting on.
func (c *Controller) Transcript() []Event {
	switch c.step {
	case StepWelcome:
		return c.WelcomeEvents()
	case StepContact:
		return c.contactTranscript()
	case StepQuestionnaire:
		return c.questionnaireTranscript()
	default:
		return nil
	}
}

func (c *Controller) contactTranscript() []Event {
	events := []Event{botEvent(contactIntro)}
	for i, f := range contact.Fields() {
		if i > c.fieldIdx {
			break
		}
		if i == c.fieldIdx {
			events = append(events, botEvent(f.Prompt))
			break
		}
		events = append(events, botEvent(f.Prompt), userEvent(c.info.Get(f.Key)))
	}
	return events
}

func (c *Controller) questionnaireTranscript() []Event {
	events := []Event{botEvent(questionnaireIntro)}
	for i, q := range c.cat.All() {
		if i > c.qIdx {
			break
		}
		if i == c.qIdx {
			events = append(events, c.questionEvent())
			break
		}
		ans, ok := c.answers[q.ID]
		if !ok {
			continue
		}
		events = append(events,
			botEvent(fmt.Sprintf("Pregunta %d/%d · %s\n\n%s", i+1, c.cat.Len(), q.Category, q.Prompt)),
			userEvent(ans.Label),
			botEvent(acknowledgment(ans.Value)),
		)
	}
	return events
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
