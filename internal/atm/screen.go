package atm

// Screen определяет экран банкомата
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenPinEntry
	ScreenMenu
	ScreenBalance
	ScreenMiniStatement
	ScreenWithdraw
	ScreenDeposit
	ScreenTransferAccount
	ScreenTransferAmount
	ScreenChangePin
	ScreenBlocked
)

var screenNames = map[Screen]string{
	ScreenWelcome:         "welcome",
	ScreenPinEntry:        "pin_entry",
	ScreenMenu:            "menu",
	ScreenBalance:         "balance",
	ScreenMiniStatement:   "mini_statement",
	ScreenWithdraw:        "withdraw",
	ScreenDeposit:         "deposit",
	ScreenTransferAccount: "transfer_account",
	ScreenTransferAmount:  "transfer_amount",
	ScreenChangePin:       "change_pin",
	ScreenBlocked:         "blocked",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

// InputMode определяет, какой ввод принимает клавиатура на экране
type InputMode int

const (
	ModeNone InputMode = iota
	ModePin
	ModeAmount
	ModeAccount
)

// MaxLen возвращает максимальную длину буфера для режима ввода
func (m InputMode) MaxLen() int {
	switch m {
	case ModePin:
		return 4
	case ModeAmount:
		return 6
	case ModeAccount:
		return 12
	}
	return 0
}

// Masked сообщает, нужно ли скрывать вводимые цифры
func (m InputMode) Masked() bool {
	return m == ModePin
}

func (s Screen) inputMode() InputMode {
	switch s {
	case ScreenPinEntry, ScreenChangePin:
		return ModePin
	case ScreenWithdraw, ScreenDeposit, ScreenTransferAmount:
		return ModeAmount
	case ScreenTransferAccount:
		return ModeAccount
	}
	return ModeNone
}

// MenuItem - пункт главного меню
type MenuItem int

const (
	ItemBalance MenuItem = iota + 1
	ItemMiniStatement
	ItemWithdraw
	ItemDeposit
	ItemTransfer
	ItemChangePin
	ItemExit
)

// MenuItems перечисляет пункты меню в порядке отображения
var MenuItems = []MenuItem{
	ItemBalance,
	ItemMiniStatement,
	ItemWithdraw,
	ItemDeposit,
	ItemTransfer,
	ItemChangePin,
	ItemExit,
}

var menuLabels = map[MenuItem]string{
	ItemBalance:       "Balance",
	ItemMiniStatement: "Mini Statement",
	ItemWithdraw:      "Withdraw",
	ItemDeposit:       "Deposit",
	ItemTransfer:      "Transfer",
	ItemChangePin:     "Change PIN",
	ItemExit:          "Exit",
}

var menuKeys = map[MenuItem]string{
	ItemBalance:       "balance",
	ItemMiniStatement: "ministatement",
	ItemWithdraw:      "withdraw",
	ItemDeposit:       "deposit",
	ItemTransfer:      "transfer",
	ItemChangePin:     "changepin",
	ItemExit:          "exit",
}

// Label возвращает подпись пункта меню
func (i MenuItem) Label() string {
	return menuLabels[i]
}

// Key возвращает машинное имя пункта меню (используется в callback data)
func (i MenuItem) Key() string {
	return menuKeys[i]
}

// ParseMenuItem находит пункт меню по машинному имени
func ParseMenuItem(key string) (MenuItem, bool) {
	for item, k := range menuKeys {
		if k == key {
			return item, true
		}
	}
	return 0, false
}

func (i MenuItem) screen() Screen {
	switch i {
	case ItemBalance:
		return ScreenBalance
	case ItemMiniStatement:
		return ScreenMiniStatement
	case ItemWithdraw:
		return ScreenWithdraw
	case ItemDeposit:
		return ScreenDeposit
	case ItemTransfer:
		return ScreenTransferAccount
	case ItemChangePin:
		return ScreenChangePin
	}
	return ScreenWelcome
}
