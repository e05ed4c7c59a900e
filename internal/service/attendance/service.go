package attendance

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/apiclient"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/modal"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/viewstate"
)

const (
	modalMarkAttendance = "mark-attendance"
	modalToggleStatus   = "toggle-status"
)

type Option func(*AttendanceControllerImpl)

// WithClock overrides the source of "today" used to prefill the mark form.
func WithClock(now func() time.Time) Option {
	return func(c *AttendanceControllerImpl) { c.now = now }
}

// WithNotificationTimeout sets how long a success message stays before it
// clears itself. Zero keeps it until dismissed.
func WithNotificationTimeout(d time.Duration) Option {
	return func(c *AttendanceControllerImpl) { c.noticeTimeout = d }
}

type AttendanceControllerImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	publisher      sse.Publisher
	modals         *modal.Stack
	now            func() time.Time
	noticeTimeout  time.Duration

	mu             sync.Mutex
	employees      []employee.Employee
	employeesFetch viewstate.Scope
	filter         attendance.Filter
	records        []attendance.Record
	recordsFilter  attendance.Filter
	recordsFetch   viewstate.Scope
	pageError      string
	markModal      *modal.Scope
	markForm       attendance.MarkAttendanceRequest
	markError      string
	submitting     bool
	toggleModal    *modal.Scope
	toggleTarget   *attendance.Record
	toggling       map[attendance.RowKey]struct{}
	notice         viewstate.Notice
}

// NewAttendanceController builds the attendance screen. publisher may be nil.
func NewAttendanceController(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	publisher sse.Publisher,
	opts ...Option,
) attendance.AttendanceController {
	c := &AttendanceControllerImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		publisher:      publisher,
		modals:         modal.NewStack(),
		now:            time.Now,
		noticeTimeout:  viewstate.NoticeTimeout,
		employees:      []employee.Employee{},
		records:        []attendance.Record{},
		toggling:       make(map[attendance.RowKey]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) Snapshot() attendance.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	toggling := make([]attendance.RowKey, 0, len(c.toggling))
	for key := range c.toggling {
		toggling = append(toggling, key)
	}
	sort.Slice(toggling, func(i, j int) bool {
		if toggling[i].EmployeeID != toggling[j].EmployeeID {
			return toggling[i].EmployeeID < toggling[j].EmployeeID
		}
		return toggling[i].Date < toggling[j].Date
	})

	snap := attendance.Snapshot{
		Employees:      append([]employee.Employee{}, c.employees...),
		EmployeesFetch: c.employeesFetch.State(),
		Filter:         c.filter,
		Records:        append([]attendance.Record{}, c.records...),
		RecordsFetch:   c.recordsFetch.State(),
		PageError:      c.pageError,
		MarkModalOpen:  c.markModal != nil,
		MarkForm:       c.markForm,
		MarkError:      c.markError,
		Submitting:     c.submitting,
		Toggling:       toggling,
		Notification:   c.notice.Message(),
		Modals:         c.modals.Names(),
		Focus:          c.modals.Focus(),
		ScrollLocked:   c.modals.ScrollLocked(),
	}
	if c.toggleTarget != nil {
		target := *c.toggleTarget
		snap.ToggleTarget = &target
	}
	return snap
}

func (c *AttendanceControllerImpl) publish() {
	sse.Notify(c.publisher, sse.TopicAttendance, c.Snapshot())
}

// notify shows a success message. The caller holds c.mu.
func (c *AttendanceControllerImpl) notify(message string) {
	c.notice.Show(message, c.noticeTimeout, c.expireNotice)
}

func (c *AttendanceControllerImpl) expireNotice(tok viewstate.Token) {
	c.mu.Lock()
	expired := c.notice.Expire(tok)
	c.mu.Unlock()
	if expired {
		c.publish()
	}
}

// FetchEmployees implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) FetchEmployees(ctx context.Context) error {
	c.mu.Lock()
	tok := c.employeesFetch.Begin()
	c.mu.Unlock()
	c.publish()

	list, err := c.employeeRepo.List(ctx)

	c.mu.Lock()
	if err != nil {
		if c.employeesFetch.Fail(tok, apiclient.Message(err, employee.MessageLoadFailed)) {
			slog.Warn("Failed to load employee picker", "error", err)
		}
	} else if c.employeesFetch.Succeed(tok) {
		c.employees = list
	}
	c.mu.Unlock()
	c.publish()

	return err
}

// SetFilter implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) SetFilter(ctx context.Context, filter attendance.Filter) error {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
	return c.FetchAttendance(ctx)
}

// SelectEmployee implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) SelectEmployee(ctx context.Context, employeeID string) error {
	c.mu.Lock()
	c.filter.EmployeeID = employeeID
	c.mu.Unlock()
	return c.FetchAttendance(ctx)
}

// SetDateRange implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) SetDateRange(ctx context.Context, startDate, endDate string) error {
	c.mu.Lock()
	c.filter.StartDate = startDate
	c.filter.EndDate = endDate
	c.mu.Unlock()
	return c.FetchAttendance(ctx)
}

// FetchAttendance implements attendance.AttendanceController. The response
// is committed only while the request is still the latest for the screen.
func (c *AttendanceControllerImpl) FetchAttendance(ctx context.Context) error {
	c.mu.Lock()
	filter := c.filter

	if filter.EmployeeID == "" {
		c.recordsFetch.Reset()
		c.records = []attendance.Record{}
		c.recordsFilter = filter
		c.mu.Unlock()
		c.publish()
		return nil
	}

	if err := filter.ValidateRange(); err != nil {
		msg := attendance.MessageInvalidRange
		if errors.Is(err, attendance.ErrInvalidDate) {
			msg = attendance.MessageInvalidDate
		}
		c.recordsFetch.Reject(msg)
		c.records = []attendance.Record{}
		c.recordsFilter = filter
		c.mu.Unlock()
		c.publish()
		return err
	}

	tok := c.recordsFetch.Begin()
	c.pageError = ""
	c.mu.Unlock()
	c.publish()

	records, err := c.attendanceRepo.ListByEmployee(ctx, filter.EmployeeID, filter.StartDate, filter.EndDate)

	c.mu.Lock()
	if err != nil {
		if c.recordsFetch.Fail(tok, apiclient.Message(err, attendance.MessageLoadFailed)) {
			slog.Warn("Failed to load attendance", "employee_id", filter.EmployeeID, "error", err)
			if c.recordsFilter != filter {
				c.records = []attendance.Record{}
				c.recordsFilter = filter
			}
		}
	} else if c.recordsFetch.Succeed(tok) {
		c.records = records
		c.recordsFilter = filter
	} else {
		slog.Debug("Discarded stale attendance response", "employee_id", filter.EmployeeID)
	}
	c.mu.Unlock()
	c.publish()

	return err
}

// OpenMarkModal implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) OpenMarkModal() {
	c.mu.Lock()
	if c.markModal == nil {
		c.openMarkLocked()
	}
	c.markForm = attendance.MarkAttendanceRequest{
		EmployeeID: c.filter.EmployeeID,
		Date:       validator.Today(c.now()),
		Status:     attendance.StatusPresent,
	}
	c.markError = ""
	c.mu.Unlock()
	c.publish()
}

// openMarkLocked must be called with c.mu held.
func (c *AttendanceControllerImpl) openMarkLocked() {
	scope := c.modals.Open(modalMarkAttendance,
		modal.WithFocus("employee_id"),
		modal.WithDismiss(c.CloseMarkModal),
	)
	scope.Defer(func() {
		c.mu.Lock()
		if c.markModal == scope {
			c.markModal = nil
		}
		c.markForm = attendance.MarkAttendanceRequest{}
		c.markError = ""
		c.mu.Unlock()
	})
	c.markModal = scope
}

// CloseMarkModal implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) CloseMarkModal() {
	c.mu.Lock()
	scope := c.markModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
		c.publish()
	}
}

// MarkAttendance implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) MarkAttendance(ctx context.Context, form attendance.MarkAttendanceRequest) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return attendance.ErrMutationInFlight
	}
	if c.markModal == nil {
		c.openMarkLocked()
	}
	c.markForm = form

	if err := form.Validate(); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.markError = verrs.First()
		} else {
			c.markError = err.Error()
		}
		c.mu.Unlock()
		c.publish()
		return err
	}

	c.submitting = true
	c.markError = ""
	c.mu.Unlock()
	c.publish()

	_, err := c.attendanceRepo.Mark(ctx, form)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		if apiclient.IsConflict(err) {
			c.markError = attendance.MessageAlreadyMarked
		} else {
			c.markError = apiclient.Message(err, attendance.MessageMarkFailed)
		}
		c.mu.Unlock()
		c.publish()
		return err
	}
	c.notify(attendance.MessageMarked)
	refetch := form.EmployeeID == c.filter.EmployeeID
	scope := c.markModal
	c.mu.Unlock()

	slog.Info("Attendance marked", "employee_id", form.EmployeeID, "date", form.Date, "status", form.Status)
	if scope != nil {
		scope.Close()
	}

	if refetch {
		if err := c.FetchAttendance(ctx); err != nil {
			slog.Warn("Refetch after mark failed", "error", err)
		}
	} else {
		c.publish()
	}
	return nil
}

// RequestToggle implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) RequestToggle(record attendance.Record) error {
	c.mu.Lock()
	var target *attendance.Record
	for i := range c.records {
		if c.records[i].EmployeeID == record.EmployeeID && c.records[i].Date == record.Date {
			r := c.records[i]
			target = &r
			break
		}
	}
	if target == nil {
		c.mu.Unlock()
		return attendance.ErrRecordNotFound
	}
	previous := c.toggleModal
	c.mu.Unlock()

	if previous != nil {
		previous.Close()
	}

	c.mu.Lock()
	scope := c.modals.Open(modalToggleStatus, modal.WithFocus("cancel"), modal.WithDismiss(c.CancelToggle))
	scope.Defer(func() {
		c.mu.Lock()
		if c.toggleModal == scope {
			c.toggleModal = nil
			c.toggleTarget = nil
		}
		c.mu.Unlock()
	})
	c.toggleModal = scope
	c.toggleTarget = target
	c.mu.Unlock()
	c.publish()

	return nil
}

// CancelToggle implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) CancelToggle() {
	c.mu.Lock()
	scope := c.toggleModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
		c.publish()
	}
}

// ConfirmToggle implements attendance.AttendanceController. The dialog closes
// right away; only the target row (employee and date) stays blocked until the
// update returns.
func (c *AttendanceControllerImpl) ConfirmToggle(ctx context.Context) error {
	c.mu.Lock()
	if c.toggleTarget == nil {
		c.mu.Unlock()
		return attendance.ErrNoToggleTarget
	}
	target := *c.toggleTarget
	if _, busy := c.toggling[target.Key()]; busy {
		c.mu.Unlock()
		return attendance.ErrToggleInFlight
	}
	c.toggling[target.Key()] = struct{}{}
	scope := c.toggleModal
	c.mu.Unlock()

	if scope != nil {
		scope.Close()
	}
	c.publish()

	next := target.Status.Flip()
	_, err := c.attendanceRepo.UpdateStatus(ctx, target.EmployeeID, target.Date, next)

	c.mu.Lock()
	delete(c.toggling, target.Key())
	if err != nil {
		c.pageError = apiclient.Message(err, attendance.MessageUpdateFailed)
	} else {
		c.notify(attendance.MessageUpdated(next))
	}
	c.mu.Unlock()

	if err != nil {
		slog.Warn("Failed to update attendance", "employee_id", target.EmployeeID, "date", target.Date, "error", err)
		c.publish()
		return err
	}

	slog.Info("Attendance updated", "employee_id", target.EmployeeID, "date", target.Date, "status", next)
	if err := c.FetchAttendance(ctx); err != nil {
		slog.Warn("Refetch after update failed", "error", err)
	}
	return nil
}

// DismissNotification implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) DismissNotification() {
	c.mu.Lock()
	c.notice.Clear()
	c.mu.Unlock()
	c.publish()
}

// Escape implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) Escape() bool {
	if !c.modals.Escape() {
		return false
	}
	c.publish()
	return true
}

// Close implements attendance.AttendanceController.
func (c *AttendanceControllerImpl) Close() {
	c.modals.CloseAll()

	c.mu.Lock()
	c.employeesFetch.Reset()
	c.recordsFetch.Reset()
	c.pageError = ""
	c.notice.Clear()
	c.mu.Unlock()
	c.publish()
}
