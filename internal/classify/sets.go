package classify

// AndroidClasses lists widget classes that accept input on Android.
var AndroidClasses = map[string]bool{
	"android.widget.Button":                    true,
	"android.widget.ImageButton":               true,
	"android.widget.EditText":                  true,
	"android.widget.CheckBox":                  true,
	"android.widget.RadioButton":               true,
	"android.widget.Switch":                    true,
	"android.widget.ToggleButton":              true,
	"android.widget.CheckedTextView":           true,
	"android.widget.Spinner":                   true,
	"android.widget.SeekBar":                   true,
	"android.widget.RatingBar":                 true,
	"android.widget.CompoundButton":            true,
	"android.widget.AutoCompleteTextView":      true,
	"android.widget.MultiAutoCompleteTextView": true,
}

// IOSTypes lists the XCUIElementType values treated as interactive.
var IOSTypes = map[string]bool{
	"XCUIElementTypeButton":           true,
	"XCUIElementTypeTextField":        true,
	"XCUIElementTypeSecureTextField":  true,
	"XCUIElementTypeTextView":         true,
	"XCUIElementTypeSwitch":           true,
	"XCUIElementTypeSlider":           true,
	"XCUIElementTypeCell":             true,
	"XCUIElementTypeLink":             true,
	"XCUIElementTypeImage":            true,
	"XCUIElementTypeTab":              true,
	"XCUIElementTypeTabBar":           true,
	"XCUIElementTypeNavigationBar":    true,
	"XCUIElementTypeSearchField":      true,
	"XCUIElementTypeSegmentedControl": true,
	"XCUIElementTypePicker":           true,
	"XCUIElementTypePickerWheel":      true,
	"XCUIElementTypeCollectionView":   true,
	"XCUIElementTypeTableView":        true,
	"XCUIElementTypeScrollView":       true,
}

// ChromeTags lists HTML tags that are interactive on their own. <input> is
// decided by its type instead.
var ChromeTags = map[string]bool{
	"a": true, "button": true, "textarea": true, "select": true,
	"option": true, "label": true, "form": true, "fieldset": true, "legend": true,
	"details": true, "summary": true, "menuitem": true, "area": true,
	"canvas": true, "audio": true, "video": true, "iframe": true, "embed": true,
	"object": true,
}

// ChromeInputTypes lists <input type> values that accept interaction.
var ChromeInputTypes = map[string]bool{
	"button": true, "submit": true, "reset": true, "image": true,
	"checkbox": true, "radio": true, "text": true, "password": true,
	"email": true, "number": true, "tel": true, "url": true, "search": true,
	"date": true, "time": true, "datetime-local": true, "month": true,
	"week": true, "color": true, "file": true, "range": true,
}

// ChromeRoles lists ARIA roles that make any element interactive.
var ChromeRoles = map[string]bool{
	"button":   true,
	"link":     true,
	"menuitem": true,
	"tab":      true,
	"option":   true,
}
