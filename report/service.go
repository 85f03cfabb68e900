// Package report 只读的统计与报表，全部基于交易流水计算
package report

import (
	"context"
	"sort"
	"time"

	"pocketledger/catalog"
	"pocketledger/ledger"
	"pocketledger/models"

	"github.com/shopspring/decimal"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"

	defaultTrendMonths = 6
	maxTrendMonths     = 24
)

var hundred = decimal.NewFromInt(100)

// Source 流水与余额的读取
type Source interface {
	ListTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]models.Transaction, error)
	ListBalances(ctx context.Context, userID uint) ([]models.WalletBalance, error)
}

// Catalog 名称目录
type Catalog interface {
	Names(ctx context.Context) (*catalog.Names, error)
	PaymentMethods(ctx context.Context) ([]models.PaymentMethod, error)
}

// Service 统计服务
type Service struct {
	src     Source
	catalog Catalog
	now     func() time.Time
	loc     *time.Location
}

// Option 统计服务配置项
type Option func(*Service)

// WithClock 指定“今天”的时间来源
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation 指定周期计算使用的时区
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// NewService 创建统计服务
func NewService(src Source, cat Catalog, opts ...Option) *Service {
	s := &Service{
		src:     src,
		catalog: cat,
		now:     time.Now,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) list(ctx context.Context, f ledger.TransactionFilter) ([]models.Transaction, error) {
	list, err := s.src.ListTransactions(ctx, f)
	if err != nil {
		return nil, ledger.StoreFailure("list transactions", err)
	}
	return list, nil
}

func (s *Service) names(ctx context.Context) (*catalog.Names, error) {
	n, err := s.catalog.Names(ctx)
	if err != nil {
		return nil, ledger.StoreFailure("load catalog", err)
	}
	return n, nil
}

func validateScope(userID uint, typ models.TransactionType) error {
	if userID == 0 {
		return &ledger.Error{Kind: ledger.KindInvalidInput, Message: "user_id is required"}
	}
	if !typ.Valid() {
		return &ledger.Error{Kind: ledger.KindInvalidInput, Message: "type must be income or expense"}
	}
	return nil
}

// GetTransactions 某月的交易，日期倒序，同日按 ID 倒序
func (s *Service) GetTransactions(ctx context.Context, userID uint, typ models.TransactionType, month string) ([]TransactionView, error) {
	if err := validateScope(userID, typ); err != nil {
		return nil, err
	}
	start, err := ledger.ParseMonth(month, s.loc)
	if err != nil {
		return nil, err
	}

	list, err := s.list(ctx, monthRange(start).filter(ledger.TransactionFilter{UserID: userID, Type: typ}))
	if err != nil {
		return nil, err
	}
	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]TransactionView, 0, len(list))
	for _, t := range list {
		out = append(out, TransactionView{
			Transaction:       t,
			CategoryName:      names.Category(t.CategoryID),
			SubcategoryName:   names.Subcategory(t.SubcategoryID),
			PaymentMethodName: names.PaymentMethod(t.PaymentMethodID),
		})
	}
	return out, nil
}

// GetCategoryBreakdown 某月支出按类别汇总，金额倒序
func (s *Service) GetCategoryBreakdown(ctx context.Context, userID uint, month string) ([]CategoryTotal, error) {
	if err := validateScope(userID, models.TypeExpense); err != nil {
		return nil, err
	}
	start, err := ledger.ParseMonth(month, s.loc)
	if err != nil {
		return nil, err
	}
	return s.categoryTotals(ctx, monthRange(start).filter(ledger.TransactionFilter{UserID: userID, Type: models.TypeExpense}))
}

// GetCategoryStats 当月/当年/全部按类别汇总，金额倒序
func (s *Service) GetCategoryStats(ctx context.Context, userID uint, typ models.TransactionType, period Period) ([]CategoryTotal, error) {
	if err := validateScope(userID, typ); err != nil {
		return nil, err
	}
	var r Range
	switch period {
	case PeriodMonth:
		r = monthRange(s.today())
	case PeriodYear:
		r = yearRange(s.today())
	case PeriodAll:
	default:
		return nil, &ledger.Error{Kind: ledger.KindInvalidInput, Message: "period must be month, year or all"}
	}
	return s.categoryTotals(ctx, r.filter(ledger.TransactionFilter{UserID: userID, Type: typ}))
}

func (s *Service) categoryTotals(ctx context.Context, f ledger.TransactionFilter) ([]CategoryTotal, error) {
	list, err := s.list(ctx, f)
	if err != nil {
		return nil, err
	}
	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	return groupByCategory(list, names), nil
}

// groupByCategory 金额倒序，金额相同按类别 ID 正序
func groupByCategory(list []models.Transaction, names *catalog.Names) []CategoryTotal {
	byID := make(map[uint]*CategoryTotal)
	for _, t := range list {
		ct, ok := byID[t.CategoryID]
		if !ok {
			ct = &CategoryTotal{CategoryID: t.CategoryID, CategoryName: names.Category(t.CategoryID)}
			byID[t.CategoryID] = ct
		}
		ct.TransactionCount++
		ct.Total = ct.Total.Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(byID))
	for _, ct := range byID {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

// GetReports 今天/本周/本月的汇总、类别占比和按天明细
func (s *Service) GetReports(ctx context.Context, userID uint, typ models.TransactionType, period Period) (*Report, error) {
	if err := validateScope(userID, typ); err != nil {
		return nil, err
	}
	var r Range
	switch period {
	case PeriodDay:
		r = dayRange(s.today())
	case PeriodWeek:
		r = weekRange(s.today())
	case PeriodMonth:
		r = monthRange(s.today())
	default:
		return nil, &ledger.Error{Kind: ledger.KindInvalidInput, Message: "period must be day, week or month"}
	}

	list, err := s.list(ctx, r.filter(ledger.TransactionFilter{UserID: userID, Type: typ}))
	if err != nil {
		return nil, err
	}
	names, err := s.names(ctx)
	if err != nil {
		return nil, err
	}
	categories := groupByCategory(list, names)

	startDate := r.Start.Format(dateLayout)
	endDate := r.LastDay().Format(dateLayout)

	summary := Summary{StartDate: startDate, EndDate: endDate}
	daily := make([]DailyTotal, 0)
	dayIndex := make(map[string]int)
	for _, t := range list {
		summary.Count++
		summary.Total = summary.Total.Add(t.Amount)
		if t.Amount.GreaterThan(summary.Highest) {
			summary.Highest = t.Amount
		}

		// list 已按日期倒序，按出现顺序追加即为倒序
		day := t.TransactionDate.Format(dateLayout)
		i, ok := dayIndex[day]
		if !ok {
			i = len(daily)
			dayIndex[day] = i
			daily = append(daily, DailyTotal{Date: day})
		}
		daily[i].Count++
		daily[i].Total = daily[i].Total.Add(t.Amount)
	}
	if summary.Count > 0 {
		summary.Average = summary.Total.Div(decimal.NewFromInt(summary.Count)).Round(2)
	}

	shares := make([]CategoryShare, 0, len(categories))
	for _, ct := range categories {
		shares = append(shares, CategoryShare{
			CategoryID: ct.CategoryID,
			Name:       ct.CategoryName,
			Count:      ct.TransactionCount,
			Total:      ct.Total,
			Percentage: Percentage(ct.Total, summary.Total),
		})
	}

	return &Report{
		Summary:           summary,
		CategoryBreakdown: shares,
		DailyBreakdown:    daily,
		Period:            PeriodInfo{Type: period, StartDate: startDate, EndDate: endDate},
	}, nil
}

// Percentage round(part / total * 100, 1)，total 为 0 时返回 0
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(1)
}

// GetMonthlyTrends 最近 months 个自然月（含本月）的收支趋势，按时间正序，无数据的月份补零
func (s *Service) GetMonthlyTrends(ctx context.Context, userID uint, months int) ([]MonthlyTrend, error) {
	if userID == 0 {
		return nil, &ledger.Error{Kind: ledger.KindInvalidInput, Message: "user_id is required"}
	}
	if months <= 0 {
		months = defaultTrendMonths
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	current := monthRange(s.today())
	r := Range{Start: current.Start.AddDate(0, -(months - 1), 0), End: current.End}

	list, err := s.list(ctx, r.filter(ledger.TransactionFilter{UserID: userID}))
	if err != nil {
		return nil, err
	}

	out := make([]MonthlyTrend, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := r.Start.AddDate(0, i, 0).Format(monthLayout)
		out[i] = MonthlyTrend{Month: key}
		index[key] = i
	}
	for _, t := range list {
		i, ok := index[t.TransactionDate.Format(monthLayout)]
		if !ok {
			continue
		}
		out[i].Count++
		if t.Type == models.TypeIncome {
			out[i].Income = out[i].Income.Add(t.Amount)
		} else {
			out[i].Expense = out[i].Expense.Add(t.Amount)
		}
	}
	for i := range out {
		out[i].Net = out[i].Income.Sub(out[i].Expense)
	}
	return out, nil
}

// GetWalletBalances 全部支付方式及用户余额，没有余额记录的记为 0
func (s *Service) GetWalletBalances(ctx context.Context, userID uint) ([]WalletView, error) {
	if userID == 0 {
		return nil, &ledger.Error{Kind: ledger.KindInvalidInput, Message: "user_id is required"}
	}
	methods, err := s.catalog.PaymentMethods(ctx)
	if err != nil {
		return nil, ledger.StoreFailure("load payment methods", err)
	}
	balances, err := s.src.ListBalances(ctx, userID)
	if err != nil {
		return nil, ledger.StoreFailure("list wallet balances", err)
	}

	byMethod := make(map[uint]models.WalletBalance, len(balances))
	for _, b := range balances {
		byMethod[b.PaymentMethodID] = b
	}

	out := make([]WalletView, 0, len(methods))
	for _, m := range methods {
		v := WalletView{MethodID: m.ID, MethodName: m.Name, Balance: decimal.Zero}
		if b, ok := byMethod[m.ID]; ok {
			updated := b.UpdatedAt
			v.Balance = b.Balance
			v.UpdatedAt = &updated
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MethodID < out[j].MethodID })
	return out, nil
}
