package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Имена встроенных шаблонов
const (
	TemplateCoachSignup    = "coach_signup"
	TemplateCoachDecision  = "coach_decision"
	TemplateStudentWelcome = "student_welcome"
	TemplatePasswordReset  = "password_reset"
	TemplateTicketEvent    = "ticket_event"
	TemplateInvoiceStatus  = "invoice_status"
)

var builtinTemplates = map[string]string{
	TemplateCoachSignup: `<p>Hello {{.AdminName}},</p>
<p>A new coach <b>{{.CoachName}}</b> ({{.CoachEmail}}) signed up and is waiting for approval.</p>`,

	TemplateCoachDecision: `<p>Hello {{.CoachName}},</p>
<p>Your coach account has been <b>{{.Decision}}</b>.</p>
{{if .Approved}}<p>You can now log in and start creating decks.</p>{{end}}`,

	TemplateStudentWelcome: `<p>Hello,</p>
<p>Your coach <b>{{.CoachName}}</b> added you to the deck <b>{{.DeckName}}</b>.</p>
<p>Log in with:</p>
<p>Email: <b>{{.Email}}</b><br/>Temporary password: <b>{{.TempPassword}}</b></p>
<p><a href="{{.LoginURL}}">Open CoachDeck</a></p>`,

	TemplatePasswordReset: `<p>Hello,</p>
<p>A password reset was requested for your account. The link is valid for 30 minutes.</p>
<p><a href="{{.ResetURL}}">Reset password</a></p>
<p>If you did not request this, ignore this message.</p>`,

	TemplateTicketEvent: `<p>Hello {{.Name}},</p>
<p>{{.Event}} on deck <b>{{.DeckName}}</b>: <b>{{.TicketTitle}}</b>.</p>`,

	TemplateInvoiceStatus: `<p>Hello {{.Name}},</p>
<p>Your invoice for <b>{{.Amount}} {{.Currency}}</b> is now <b>{{.Status}}</b>.</p>`,
}

// TemplateManager управляет шаблонами писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает менеджер с встроенными шаблонами
func NewTemplateManager() (*TemplateManager, error) {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}
