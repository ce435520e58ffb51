package services

import (
	"bytes"
	"io"

	"gopkg.in/gomail.v2"

	"github.com/andrey156p/taskflow/config"
)

const (
	reportSubject = "דוח משימות שבועי"
	reportBody    = "מצורף דוח המשימות השבועי של הפרויקט."
)

// MailService sends the weekly report over SMTP. When credentials are not
// configured it is a logged no-op, so the rest of the system never has to
// care whether mail is set up.
type MailService struct {
	conf config.Config
}

func NewMailService(conf config.Config) *MailService {
	return &MailService{conf: conf}
}

// Enabled reports whether sending is possible with the current configuration.
func (ms *MailService) Enabled() bool {
	return ms.conf.MailEnabled()
}

// SendReport mails the workbook as an attachment with the given filename.
func (ms *MailService) SendReport(report *bytes.Buffer, filename string) error {
	if !ms.Enabled() {
		config.Logger.Infow("mail credentials missing, skipping report dispatch")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", ms.conf.SMTPUser)
	m.SetHeader("To", ms.conf.Recipients()...)
	m.SetHeader("Subject", reportSubject)
	m.SetBody("text/plain", reportBody)
	m.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(report.Bytes())
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {ReportMIME}}),
	)

	d := gomail.NewDialer(ms.conf.SMTPHost, ms.conf.SMTPPort, ms.conf.SMTPUser, ms.conf.SMTPPassword)
	return d.DialAndSend(m)
}
