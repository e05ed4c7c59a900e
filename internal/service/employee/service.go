package employee

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/modal"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/viewstate"
)

const (
	modalAddEmployee    = "add-employee"
	modalDeleteEmployee = "delete-employee"
)

type Option func(*EmployeeControllerImpl)

// WithNotificationTimeout sets how long a success message stays before it
// clears itself. Zero keeps it until dismissed.
func WithNotificationTimeout(d time.Duration) Option {
	return func(c *EmployeeControllerImpl) { c.noticeTimeout = d }
}

type EmployeeControllerImpl struct {
	repo          employee.EmployeeRepository
	publisher     sse.Publisher
	modals        *modal.Stack
	noticeTimeout time.Duration

	mu           sync.Mutex
	employees    []employee.Employee
	fetch        viewstate.Scope
	pageError    string
	addModal     *modal.Scope
	addForm      employee.CreateEmployeeRequest
	formError    string
	submitting   bool
	deleteModal  *modal.Scope
	deleteTarget *employee.Employee
	notice       viewstate.Notice
}

// NewEmployeeController builds the employees screen. publisher may be nil.
func NewEmployeeController(repo employee.EmployeeRepository, publisher sse.Publisher, opts ...Option) employee.EmployeeController {
	c := &EmployeeControllerImpl{
		repo:          repo,
		publisher:     publisher,
		modals:        modal.NewStack(),
		noticeTimeout: viewstate.NoticeTimeout,
		employees:     []employee.Employee{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot implements employee.EmployeeController.
func (c *EmployeeControllerImpl) Snapshot() employee.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := employee.Snapshot{
		Employees:    append([]employee.Employee(nil), c.employees...),
		Fetch:        c.fetch.State(),
		PageError:    c.pageError,
		AddModalOpen: c.addModal != nil,
		AddForm:      c.addForm,
		FormError:    c.formError,
		Submitting:   c.submitting,
		Notification: c.notice.Message(),
		Modals:       c.modals.Names(),
		Focus:        c.modals.Focus(),
		ScrollLocked: c.modals.ScrollLocked(),
	}
	if snap.Employees == nil {
		snap.Employees = []employee.Employee{}
	}
	if c.deleteTarget != nil {
		target := *c.deleteTarget
		snap.DeleteTarget = &target
	}
	return snap
}

func (c *EmployeeControllerImpl) publish() {
	sse.Notify(c.publisher, sse.TopicEmployees, c.Snapshot())
}

// notify shows a success message. The caller holds c.mu.
func (c *EmployeeControllerImpl) notify(message string) {
	c.notice.Show(message, c.noticeTimeout, c.expireNotice)
}

func (c *EmployeeControllerImpl) expireNotice(tok viewstate.Token) {
	c.mu.Lock()
	expired := c.notice.Expire(tok)
	c.mu.Unlock()
	if expired {
		c.publish()
	}
}

// FetchEmployees implements employee.EmployeeController.
func (c *EmployeeControllerImpl) FetchEmployees(ctx context.Context) error {
	c.mu.Lock()
	tok := c.fetch.Begin()
	c.pageError = ""
	c.mu.Unlock()
	c.publish()

	list, err := c.repo.List(ctx)

	c.mu.Lock()
	if err != nil {
		if c.fetch.Fail(tok, apiclient.Message(err, employee.MessageLoadFailed)) {
			slog.Warn("Failed to load employees", "error", err)
		}
	} else if c.fetch.Succeed(tok) {
		c.employees = list
	}
	c.mu.Unlock()
	c.publish()

	return err
}

// OpenAddModal implements employee.EmployeeController.
func (c *EmployeeControllerImpl) OpenAddModal() {
	c.mu.Lock()
	if c.addModal == nil {
		c.openAddLocked()
	}
	c.addForm = employee.CreateEmployeeRequest{}
	c.formError = ""
	c.mu.Unlock()
	c.publish()
}

// openAddLocked must be called with c.mu held.
func (c *EmployeeControllerImpl) openAddLocked() {
	scope := c.modals.Open(modalAddEmployee,
		modal.WithFocus("employee_id"),
		modal.WithDismiss(c.CloseAddModal),
	)
	scope.Defer(func() {
		c.mu.Lock()
		if c.addModal == scope {
			c.addModal = nil
		}
		c.addForm = employee.CreateEmployeeRequest{}
		c.formError = ""
		c.mu.Unlock()
	})
	c.addModal = scope
}

// CloseAddModal implements employee.EmployeeController.
func (c *EmployeeControllerImpl) CloseAddModal() {
	c.mu.Lock()
	scope := c.addModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
		c.publish()
	}
}

// SubmitAdd implements employee.EmployeeController.
func (c *EmployeeControllerImpl) SubmitAdd(ctx context.Context, form employee.CreateEmployeeRequest) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return employee.ErrMutationInFlight
	}
	if c.addModal == nil {
		c.openAddLocked()
	}
	c.addForm = form

	if err := form.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.formError = verrs.First()
		} else {
			c.formError = err.Error()
		}
		c.mu.Unlock()
		c.publish()
		return err
	}

	c.submitting = true
	c.formError = ""
	c.mu.Unlock()
	c.publish()

	created, err := c.repo.Create(ctx, form)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.formError = apiclient.Message(err, employee.MessageAddFailed)
		c.mu.Unlock()
		c.publish()
		return err
	}
	c.notify(employee.MessageAdded)
	scope := c.addModal
	c.mu.Unlock()

	slog.Info("Employee added", "employee_id", created.EmployeeID)
	if scope != nil {
		scope.Close()
	}

	if err := c.FetchEmployees(ctx); err != nil {
		slog.Warn("Refetch after add failed", "error", err)
	}
	return nil
}

// RequestDelete implements employee.EmployeeController.
func (c *EmployeeControllerImpl) RequestDelete(employeeID string) error {
	c.mu.Lock()
	var target *employee.Employee
	for i := range c.employees {
		if c.employees[i].EmployeeID == employeeID {
			e := c.employees[i]
			target = &e
			break
		}
	}
	if target == nil {
		c.mu.Unlock()
		return employee.ErrEmployeeNotFound
	}
	previous := c.deleteModal
	c.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	c.mu.Lock()
	scope := c.modals.Open(modalDeleteEmployee, modal.WithFocus("cancel"), modal.WithDismiss(c.CancelDelete))
	scope.Defer(func() {
		c.mu.Lock()
		if c.deleteModal == scope {
			c.deleteModal = nil
			c.deleteTarget = nil
		}
		c.mu.Unlock()
	})
	c.deleteModal = scope
	c.deleteTarget = target
	c.mu.Unlock()
	c.publish()

	return nil
}

// CancelDelete implements employee.EmployeeController.
func (c *EmployeeControllerImpl) CancelDelete() {
	c.mu.Lock()
	scope := c.deleteModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
		c.publish()
	}
}

// ConfirmDelete implements employee.EmployeeController.
func (c *EmployeeControllerImpl) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return employee.ErrMutationInFlight
	}
	if c.deleteTarget == nil {
		c.mu.Unlock()
		return employee.ErrNoDeleteTarget
	}
	target := *c.deleteTarget
	c.submitting = true
	c.mu.Unlock()
	c.publish()

	err := c.repo.Delete(ctx, target.EmployeeID)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.pageError = apiclient.Message(err, employee.MessageDeleteFailed)
	} else {
		c.notify(employee.MessageDeleted)
	}
	scope := c.deleteModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
	}

	if err != nil {
		slog.Warn("Failed to delete employee", "employee_id", target.EmployeeID, "error", err)
		c.publish()
		return err
	}

	slog.Info("Employee deleted", "employee_id", target.EmployeeID)
	if err := c.FetchEmployees(ctx); err != nil {
		slog.Warn("Refetch after delete failed", "error", err)
	}
	return nil
}

// DismissNotification implements employee.EmployeeController.
func (c *EmployeeControllerImpl) DismissNotification() {
	c.mu.Lock()
	c.notice.Clear()
	c.mu.Unlock()
	c.publish()
}

// Escape implements employee.EmployeeController.
func (c *EmployeeControllerImpl) Escape() bool {
	if !c.modals.Escape() {
		return false
	}
	c.publish()
	return true
}

// Close implements employee.EmployeeController.
func (c *EmployeeControllerImpl) Close() {
	c.modals.CloseAll()

	c.mu.Lock()
	c.fetch.Reset()
	c.pageError = ""
	c.notice.Clear()
	c.mu.Unlock()
	c.publish()
}
