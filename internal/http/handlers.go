package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"kassa/internal/core"
	"kassa/internal/ledger"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	store := s.svc.Store()
	data := struct {
		Today             string
		NextIncomeNumber  string
		NextExpenseNumber string
	}{
		Today:             time.Now().Format(core.DateLayout),
		NextIncomeNumber:  store.GenerateOrderNumber(core.Income),
		NextExpenseNumber: store.GenerateOrderNumber(core.Expense),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	s.handleCreate(w, r, core.Income)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	s.handleCreate(w, r, core.Expense)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request, t core.Type) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">So'rov formati noto'g'ri</div>`))
		return
	}

	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Summa noto'g'ri</div>`))
		return
	}

	date := sanitizeInput(r.Form.Get("date"))
	if date == "" {
		date = time.Now().Format(core.DateLayout)
	}

	draft := core.Draft{
		Type:   t,
		Amount: amount,
		Date:   date,
	}
	switch t {
	case core.Income:
		draft.Income = &core.IncomeDetails{
			Payer:   sanitizeInput(r.Form.Get("payer")),
			Debit:   sanitizeInput(r.Form.Get("debit")),
			Credit:  sanitizeInput(r.Form.Get("credit")),
			Purpose: sanitizeInput(r.Form.Get("purpose")),
			Notes:   sanitizeInput(r.Form.Get("notes")),
		}
	case core.Expense:
		draft.Expense = &core.ExpenseDetails{
			Recipient: sanitizeInput(r.Form.Get("recipient")),
			Debit:     sanitizeInput(r.Form.Get("debit")),
			Credit:    sanitizeInput(r.Form.Get("credit")),
			DocRef:    sanitizeInput(r.Form.Get("docRef")),
			Purpose:   sanitizeInput(r.Form.Get("purpose")),
		}
	}

	tx, err := s.svc.Add(r.Context(), draft)
	if err != nil {
		var perr *ledger.PersistenceError
		if errors.As(err, &perr) {
			slog.ErrorContext(r.Context(), "Transaction save error", "error", err, "type", t)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<div class="error">Saqlashda xatolik</div>`))
			return
		}
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Ma'lumotlar noto'g'ri: ` + template.HTMLEscapeString(err.Error()) + `</div>`))
		return
	}

	s.invalidateViews()
	w.Header().Set("HX-Trigger", `{"ledger:changed": {}}`)
	w.WriteHeader(http.StatusOK)

	label := "Kirim"
	if t == core.Expense {
		label = "Chiqim"
	}
	_, _ = w.Write([]byte(`<div class="success">` + label + ` qayd etildi (` +
		template.HTMLEscapeString(tx.OrderNumber) + `): ` +
		template.HTMLEscapeString(formatSom(tx.Amount)) + `</div>`))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		w.Header().Set("Allow", "POST, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">So'rov formati noto'g'ri</div>`))
		return
	}

	id := sanitizeInput(r.Form.Get("id"))
	if id == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">Hujjat identifikatori ko'rsatilmagan</div>`))
		return
	}

	deleted, err := s.svc.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction delete error", "error", err, "id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">Saqlashda xatolik</div>`))
		return
	}
	if !deleted {
		// A record that is already gone is not a failure.
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`<div class="warning">Hujjat topilmadi</div>`))
		return
	}

	s.invalidateViews()
	w.Header().Set("HX-Trigger", `{"ledger:changed": {}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Hujjat o'chirildi</div>`))
}

// transactionRow is the per-type table view of one order.
type transactionRow struct {
	ID           string
	OrderNumber  string
	Date         string
	Counterparty string
	Purpose      string
	Amount       string
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	t := core.Type(r.URL.Query().Get("type"))
	if !t.Valid() {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">Noma'lum hujjat turi</div>`))
		return
	}

	title := "Kirim hujjatlari"
	if t == core.Expense {
		title = "Chiqim hujjatlari"
	}

	s.renderCached(r.Context(), w, "transactions:"+string(t), "transactions.html", func() any {
		txs := s.svc.Store().ByType(t)
		rows := make([]transactionRow, 0, len(txs))
		for _, tx := range txs {
			row := transactionRow{
				ID:          tx.ID,
				OrderNumber: tx.OrderNumber,
				Date:        tx.Date,
				Amount:      formatSom(tx.Amount),
			}
			switch {
			case tx.Income != nil:
				row.Counterparty = tx.Income.Payer
				row.Purpose = tx.Income.Purpose
			case tx.Expense != nil:
				row.Counterparty = tx.Expense.Recipient
				row.Purpose = tx.Expense.Purpose
			}
			rows = append(rows, row)
		}
		return struct {
			Type  string
			Title string
			Rows  []transactionRow
		}{Type: string(t), Title: title, Rows: rows}
	})
}

// cashBookRow is one kassa kitobi line: the order with the balance as of it.
type cashBookRow struct {
	Date           string
	OrderNumber    string
	Counterparty   string
	Income         string
	Expense        string
	RunningBalance string
}

func (s *Server) handleCashBook(w http.ResponseWriter, r *http.Request) {
	s.renderCached(r.Context(), w, "cashbook", "cashbook.html", func() any {
		entries := s.svc.Store().CashBook()
		rows := make([]cashBookRow, 0, len(entries))
		for _, e := range entries {
			row := cashBookRow{
				Date:           e.Date,
				OrderNumber:    e.OrderNumber,
				RunningBalance: formatSom(e.RunningBalance),
			}
			if e.Type == core.Income {
				row.Income = formatSom(e.Amount)
			} else {
				row.Expense = formatSom(e.Amount)
			}
			switch {
			case e.Income != nil:
				row.Counterparty = e.Income.Payer
			case e.Expense != nil:
				row.Counterparty = e.Expense.Recipient
			}
			rows = append(rows, row)
		}
		return struct {
			Rows []cashBookRow
		}{Rows: rows}
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.renderCached(r.Context(), w, "stats", "stats.html", func() any {
		store := s.svc.Store()
		today := store.TodayStats()
		return struct {
			Balance      string
			Count        int
			TodayIncome  string
			TodayExpense string
		}{
			Balance:      formatSom(store.Balance()),
			Count:        store.Count(),
			TodayIncome:  formatSom(today.Income),
			TodayExpense: formatSom(today.Expense),
		}
	})
}
