package export

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/hh-harvester/internal/dataset"
	"github.com/nats-io/nats.go"
)

type publisher interface {
	Publish(subject string, data []byte) error
	Flush() error
}

// NATSExporter publishes every row as a separate JSON message.
type NATSExporter struct {
	conn    publisher
	subject string
	close   func()
}

type vacancyMessage struct {
	ID          string   `json:"id"`
	Employer    string   `json:"employer"`
	Name        string   `json:"name"`
	Salary      bool     `json:"salary"`
	From        *int     `json:"salary_from"`
	To          *int     `json:"salary_to"`
	Experience  string   `json:"experience"`
	Schedule    string   `json:"schedule"`
	Keys        []string `json:"key_skills"`
	Description string   `json:"description"`
}

func NewNATSExporter(url, subject string) (*NATSExporter, error) {
	nc, err := nats.Connect(url, nats.Name("hh-harvester"))
	if err != nil {
		return nil, err
	}
	return &NATSExporter{conn: nc, subject: subject, close: nc.Close}, nil
}

func (e *NATSExporter) Name() string {
	return "nats"
}

func (e *NATSExporter) Export(ctx context.Context, d *dataset.Dataset) error {

	if err := d.Validate(); err != nil {
		return err
	}

	for i := 0; i < d.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := json.Marshal(toMessage(d, i))
		if err != nil {
			return err
		}
		if err = e.conn.Publish(e.subject, data); err != nil {
			return fmt.Errorf("failed to publish vacancy %s: %w", d.Ids[i], err)
		}
	}

	return e.conn.Flush()
}

func (e *NATSExporter) Close() {
	if e.close != nil {
		e.close()
	}
}

func toMessage(d *dataset.Dataset, i int) vacancyMessage {
	row := d.Row(i)
	return vacancyMessage{
		ID:          row.ID,
		Employer:    row.Employer,
		Name:        row.Name,
		Salary:      row.Salary.HasSalary,
		From:        row.Salary.From,
		To:          row.Salary.To,
		Experience:  row.Experience,
		Schedule:    row.Schedule,
		Keys:        row.KeySkills,
		Description: row.Description,
	}
}
