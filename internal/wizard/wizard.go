// Package wizard drives the assessment flow: welcome, contact
// collection, questionnaire, diagnosis and optional chat. The
// controller owns the authoritative state; screens only render the
// events it emits. State changes are synchronous — typing delays in
// the UI are cosmetic and never a correctness boundary.
package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/samyrami/exporta-facil-bot/internal/catalog"
	"github.com/samyrami/exporta-facil-bot/internal/contact"
	"github.com/samyrami/exporta-facil-bot/internal/diagnosis"
	"github.com/samyrami/exporta-facil-bot/internal/scoring"
	"github.com/samyrami/exporta-facil-bot/internal/store"
)

// Step identifies a wizard state.
type Step string

const (
	StepWelcome       Step = "welcome"
	StepContact       Step = "contact"
	StepQuestionnaire Step = "questionnaire"
	StepDiagnosis     Step = "diagnosis"
	StepChat          Step = "chat"
)

// Controller is the wizard state machine. It persists every field,
// answer and diagnosis event through the gateway so an interrupted
// session resumes exactly where it stopped.
type Controller struct {
	cat *catalog.Catalog
	gw  store.Gateway
	now func() time.Time

	step      Step
	fieldIdx  int
	info      contact.Info
	qIdx      int
	answers   map[int]scoring.Answer
	result    *diagnosis.Result
	completed bool
}

// New builds a controller, resuming from persisted state when present:
// a completed session lands on the diagnosis, a session with answers
// lands on the first unanswered question, a session with contact data
// resumes contact collection or the questionnaire, and anything else
// starts at the welcome step.
func New(ctx context.Context, cat *catalog.Catalog, gw store.Gateway) (*Controller, error) {
	c := &Controller{
		cat:     cat,
		gw:      gw,
		now:     time.Now,
		step:    StepWelcome,
		answers: map[int]scoring.Answer{},
	}

	completed, err := gw.Completed(ctx)
	if err != nil {
		return nil, fmt.Errorf("wizard: load completion flag: %w", err)
	}
	info, err := gw.Contact(ctx)
	if err != nil {
		return nil, fmt.Errorf("wizard: load contact: %w", err)
	}
	answers, err := gw.Answers(ctx)
	if err != nil {
		return nil, fmt.Errorf("wizard: load answers: %w", err)
	}
	if info != nil {
		c.info = *info
	}
	for id, a := range answers {
		c.answers[id] = a
	}

	if completed {
		result, err := gw.Diagnosis(ctx)
		if err != nil {
			return nil, fmt.Errorf("wizard: load diagnosis: %w", err)
		}
		if result != nil {
			c.completed = true
			c.result = result
			c.step = StepDiagnosis
			c.qIdx = cat.Len() - 1
			c.fieldIdx = len(contact.Fields())
			return c, nil
		}
		// Flag without a stored diagnosis: treat the stage as not
		// reached and fall through to the answer-based resume.
	}

	if info == nil {
		return c, nil
	}

	c.fieldIdx = firstInvalidField(c.info)
	if c.fieldIdx < len(contact.Fields()) {
		c.step = StepContact
		return c, nil
	}

	c.step = StepQuestionnaire
	c.qIdx = c.firstUnanswered()
	return c, nil
}

func firstInvalidField(info contact.Info) int {
	for i, f := range contact.Fields() {
		if contact.ValidateField(f.Key, info.Get(f.Key)) != nil {
			return i
		}
	}
	return len(contact.Fields())
}

// firstUnanswered returns the index of the first question without a
// recorded answer, or the last question when all are answered.
func (c *Controller) firstUnanswered() int {
	for i, q := range c.cat.All() {
		if _, ok := c.answers[q.ID]; !ok {
			return i
		}
	}
	return c.cat.Len() - 1
}

// Step returns the current wizard state.
func (c *Controller) Step() Step {
	return c.step
}

// Contact returns the collected contact data so far.
func (c *Controller) Contact() contact.Info {
	return c.info
}

// Result returns the computed diagnosis, nil before completion.
func (c *Controller) Result() *diagnosis.Result {
	return c.result
}

// Answers returns a copy of the recorded answers.
func (c *Controller) Answers() map[int]scoring.Answer {
	cp := make(map[int]scoring.Answer, len(c.answers))
	for k, v := range c.answers {
		cp[k] = v
	}
	return cp
}

// Catalog returns the question catalog in use.
func (c *Controller) Catalog() *catalog.Catalog {
	return c.cat
}

// CurrentField returns the contact field the wizard is waiting on.
func (c *Controller) CurrentField() (contact.Field, bool) {
	fs := contact.Fields()
	if c.step != StepContact || c.fieldIdx >= len(fs) {
		return contact.Field{}, false
	}
	return fs[c.fieldIdx], true
}

// CurrentQuestion returns the question the wizard is waiting on and
// its zero-based position.
func (c *Controller) CurrentQuestion() (catalog.Question, int, bool) {
	if c.step != StepQuestionnaire {
		return catalog.Question{}, 0, false
	}
	q, err := c.cat.At(c.qIdx)
	if err != nil {
		return catalog.Question{}, 0, false
	}
	return q, c.qIdx, true
}

// Proceed accepts the welcome intent and moves to contact collection.
func (c *Controller) Proceed() []Event {
	if c.step != StepWelcome {
		return nil
	}
	c.step = StepContact
	c.fieldIdx = 0
	f := contact.Fields()[0]
	return []Event{
		botEvent(contactIntro),
		botEvent(f.Prompt),
	}
}

// MoreInfo stays on the welcome step and explains the assessment.
// Stored data is untouched.
func (c *Controller) MoreInfo() []Event {
	if c.step != StepWelcome {
		return nil
	}
	return []Event{botEventOpts(moreInfoText, []string{OptionStart})}
}

// SubmitField validates the value for the current contact field. On
// failure the cursor stays put, the error is returned and the emitted
// events re-prompt for the same field. On success the value is stored
// and persisted, and the wizard prompts for the next field or starts
// the questionnaire.
func (c *Controller) SubmitField(ctx context.Context, value string) ([]Event, error) {
	f, ok := c.CurrentField()
	if !ok {
		return nil, fmt.Errorf("wizard: no contact field pending")
	}

	if err := c.info.Set(f.Key, value); err != nil {
		events := []Event{
			userEvent(value),
			botEvent(validationMessage(err)),
			botEvent(f.Prompt),
		}
		return events, err
	}

	if err := c.gw.SaveContact(ctx, c.info); err != nil {
		return nil, fmt.Errorf("wizard: persist contact: %w", err)
	}

	events := []Event{userEvent(value)}
	c.fieldIdx++
	if c.fieldIdx < len(contact.Fields()) {
		next := contact.Fields()[c.fieldIdx]
		events = append(events,
			botEvent(fmt.Sprintf("Gracias. Ahora, %s", lowerFirst(next.Prompt))),
		)
		return events, nil
	}

	c.step = StepQuestionnaire
	c.qIdx = 0
	events = append(events, botEvent(questionnaireIntro))
	events = append(events, c.questionEvent())
	return events, nil
}

// SubmitAnswer records the option at optionIdx for the current
// question (last-write-wins per question), persists the whole answer
// set and advances. Answering the final question computes and persists
// the diagnosis and moves to the diagnosis step.
func (c *Controller) SubmitAnswer(ctx context.Context, optionIdx int) ([]Event, error) {
	q, _, ok := c.CurrentQuestion()
	if !ok {
		return nil, fmt.Errorf("wizard: no question pending")
	}
	if optionIdx < 0 || optionIdx >= len(q.Options) {
		return nil, fmt.Errorf("wizard: option %d out of range for question %d", optionIdx, q.ID)
	}
	opt := q.Options[optionIdx]

	c.answers[q.ID] = scoring.Answer{QuestionID: q.ID, Label: opt.Label, Value: opt.Score}
	if err := c.gw.SaveAnswers(ctx, c.answers); err != nil {
		return nil, fmt.Errorf("wizard: persist answers: %w", err)
	}

	events := []Event{
		userEvent(opt.Label),
		botEvent(acknowledgment(opt.Score)),
	}

	if next := c.firstUnansweredAfter(c.qIdx); next >= 0 {
		c.qIdx = next
		events = append(events, c.questionEvent())
		return events, nil
	}

	result, err := scoring.Compute(c.answers, c.cat, c.info, c.now())
	if err != nil {
		return events, fmt.Errorf("wizard: compute diagnosis: %w", err)
	}
	if err := c.gw.SaveDiagnosis(ctx, result); err != nil {
		return events, fmt.Errorf("wizard: persist diagnosis: %w", err)
	}
	if err := c.gw.SetCompleted(ctx, true); err != nil {
		return events, fmt.Errorf("wizard: persist completion: %w", err)
	}
	c.result = result
	c.completed = true
	c.step = StepDiagnosis
	events = append(events, botEvent(completionText))
	return events, nil
}

// firstUnansweredAfter looks for the next question lacking an answer,
// scanning forward from idx and wrapping to earlier skipped questions.
// Returns -1 when every question is answered.
func (c *Controller) firstUnansweredAfter(idx int) int {
	all := c.cat.All()
	for i := 1; i <= len(all); i++ {
		j := (idx + i) % len(all)
		if _, ok := c.answers[all[j].ID]; !ok {
			return j
		}
	}
	return -1
}

// Back moves the question cursor to the previous question so the
// respondent can change an answer. The recorded answer stays until
// overwritten.
func (c *Controller) Back() bool {
	if c.step != StepQuestionnaire || c.qIdx == 0 {
		return false
	}
	c.qIdx--
	return true
}

// Refine delegates to the refiner and, when it yields a rewrite,
// replaces and persists the diagnosis wholesale. A refiner failure
// leaves the stored result untouched.
func (c *Controller) Refine(ctx context.Context, r *diagnosis.Refiner) (bool, error) {
	if c.result == nil {
		return false, fmt.Errorf("wizard: no diagnosis to refine")
	}
	refined, changed := r.Refine(ctx, c.result)
	if !changed {
		return false, nil
	}
	if err := c.gw.SaveDiagnosis(ctx, refined); err != nil {
		return false, fmt.Errorf("wizard: persist refined diagnosis: %w", err)
	}
	c.result = refined
	return true, nil
}

// ContinueToChat moves from diagnosis to the follow-up chat.
func (c *Controller) ContinueToChat() {
	if c.step == StepDiagnosis {
		c.step = StepChat
	}
}

// BackToDiagnosis returns from chat to the diagnosis view.
func (c *Controller) BackToDiagnosis() {
	if c.step == StepChat {
		c.step = StepDiagnosis
	}
}

// Restart clears all persisted session state and resets to the
// welcome step. The stored API key survives.
func (c *Controller) Restart(ctx context.Context) error {
	if err := c.gw.ClearSession(ctx); err != nil {
		return fmt.Errorf("wizard: clear session: %w", err)
	}
	c.step = StepWelcome
	c.fieldIdx = 0
	c.qIdx = 0
	c.info = contact.Info{}
	c.answers = map[int]scoring.Answer{}
	c.result = nil
	c.completed = false
	return nil
}

func (c *Controller) questionEvent() Event {
	q, _ := c.cat.At(c.qIdx)
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	text := fmt.Sprintf("Pregunta %d/%d · %s\n\n%s", c.qIdx+1, c.cat.Len(), q.Category, q.Prompt)
	if q.Help != "" {
		text += "\n\n💡 " + q.Help
	}
	return botEventOpts(text, labels)
}
