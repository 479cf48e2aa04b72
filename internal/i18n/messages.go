package i18n

var catalogue = map[string]map[string]string{
	LocaleRU: messagesRU,
	LocaleEN: messagesEN,
	LocaleZH: messagesZH,
}

var messagesRU = map[string]string{
	"success": "Успешно",

	"error.bad_request":              "Некорректный запрос",
	"error.unauthorized":             "Требуется авторизация",
	"error.forbidden":                "Недостаточно прав",
	"error.not_found":                "Не найдено",
	"error.internal_error":           "Внутренняя ошибка сервера",
	"error.too_many_requests":        "Слишком много запросов, попробуйте позже",
	"error.pagination_invalid":       "Некорректные параметры пагинации",
	"error.auth_header_missing":      "Отсутствует заголовок Authorization",
	"error.auth_header_invalid":      "Некорректный заголовок Authorization",
	"error.token_invalid":            "Недействительный токен",
	"error.token_revoked":            "Токен отозван, выполните вход заново",
	"error.login_too_many":           "Слишком много попыток входа, повторите через %d с",
	"error.rate_limit_unavailable":   "Ограничитель запросов недоступен",
	"error.jwt_secret_missing":       "Не настроен секрет JWT",
	"error.login_failed":             "Неверный email или пароль",
	"error.admin_login_failed":       "Неверное имя пользователя или пароль",
	"error.user_disabled":            "Учётная запись заблокирована",
	"error.admin_disabled":           "Учётная запись администратора отключена",
	"error.password_invalid":         "Текущий пароль указан неверно",
	"error.password_weak":            "Пароль слишком простой",
	"error.password_min_length":      "Пароль должен содержать не менее %d символов",
	"error.password_require_upper":   "Пароль должен содержать заглавную букву",
	"error.password_require_lower":   "Пароль должен содержать строчную букву",
	"error.password_require_number":  "Пароль должен содержать цифру",
	"error.password_require_special": "Пароль должен содержать специальный символ",
	"error.password_numeric":         "Пароль не может состоять только из цифр",
	"error.password_too_similar":     "Пароль слишком похож на данные учётной записи",
	"error.email_invalid":            "Некорректный email",
	"error.email_exists":             "Пользователь с таким email уже существует",
	"error.username_invalid":         "Некорректное имя пользователя",
	"error.username_reserved":        "Это имя пользователя использовать нельзя",
	"error.username_exists":          "Пользователь с таким именем уже существует",
	"error.profile_invalid":          "Некорректные данные профиля",
	"error.user_not_found":           "Пользователь не найден",
	"error.admin_not_found":          "Администратор не найден",
	"error.admin_exists":             "Администратор с таким именем уже существует",
	"error.cannot_modify_self":       "Нельзя изменить собственную учётную запись",
	"error.captcha_required":         "Введите код с картинки",
	"error.captcha_invalid":          "Неверный код с картинки",
	"error.captcha_config_invalid":   "Капча настроена неверно",
	"error.validation_failed":        "Ошибка валидации",
	"error.recipe_not_found":         "Рецепт не найден",
	"error.recipe_forbidden":         "Изменять рецепт может только автор",
	"error.already_in_favorites":     "Рецепт уже в избранном",
	"error.not_in_favorites":         "Рецепта нет в избранном",
	"error.already_in_cart":          "Рецепт уже в списке покупок",
	"error.not_in_cart":              "Рецепта нет в списке покупок",
	"error.list_kind_invalid":        "Неизвестный тип списка",
	"error.shopping_list_failed":     "Не удалось сформировать список покупок",
	"error.author_not_found":         "Автор не найден",
	"error.self_subscribe":           "Нельзя подписаться на самого себя",
	"error.already_subscribed":       "Вы уже подписаны на этого автора",
	"error.not_subscribed":           "Вы не подписаны на этого автора",
	"error.recipes_limit_invalid":    "Некорректный параметр recipes_limit",
	"error.tag_not_found":            "Тег не найден",
	"error.tag_name_exists":          "Тег с таким названием уже существует",
	"error.slug_exists":              "Тег с таким slug уже существует",
	"error.tag_in_use":               "Тег используется в рецептах",
	"error.ingredient_not_found":     "Ингредиент не найден",
	"error.ingredient_exists":        "Такой ингредиент уже существует",
	"error.ingredient_in_use":        "Ингредиент используется в рецептах",
	"error.ingredient_csv_invalid":   "Некорректный CSV-файл ингредиентов",
	"error.file_required":            "Файл не передан",
	"error.short_link_not_found":     "Короткая ссылка не найдена",
	"error.short_link_failed":        "Не удалось создать короткую ссылку",
	"error.image_invalid":            "Некорректное изображение",
	"error.image_too_large":          "Изображение слишком большое",
	"error.image_type_not_allowed":   "Недопустимый тип изображения",
	"error.image_dimensions":         "Слишком большое разрешение изображения",
	"error.storage_unavailable":      "Хранилище изображений недоступно",
	"error.role_unknown":             "Неизвестная роль",
	"error.authz_failed":             "Ошибка проверки прав",

	"validation.required":                     "Обязательное поле",
	"validation.too_long":                     "Не более %d символов",
	"validation.min_value":                    "Значение должно быть не меньше %d",
	"validation.first_name_invalid":           "Имя обязательно, не более %d символов",
	"validation.last_name_invalid":            "Фамилия обязательна, не более %d символов",
	"validation.user_status_invalid":          "Недопустимый статус пользователя",
	"validation.tag_name_invalid":             "Название тега обязательно, не более %d символов",
	"validation.tag_slug_invalid":             "Slug может содержать только латинские буквы, цифры, - и _",
	"validation.ingredient_name_invalid":      "Название ингредиента обязательно, не более %d символов",
	"validation.ingredient_unit_invalid":      "Единица измерения обязательна, не более %d символов",
	"validation.recipe_tags_required":         "Укажите хотя бы один тег",
	"validation.recipe_tags_duplicate":        "Теги не должны повторяться",
	"validation.recipe_tag_not_found":         "Указан несуществующий тег",
	"validation.recipe_ingredients_required":  "Укажите хотя бы один ингредиент",
	"validation.recipe_ingredients_duplicate": "Ингредиенты не должны повторяться",
	"validation.recipe_ingredient_not_found":  "Указан несуществующий ингредиент",
}

var messagesEN = map[string]string{
	"success": "Success",

	"error.bad_request":              "Bad request",
	"error.unauthorized":             "Authentication required",
	"error.forbidden":                "Permission denied",
	"error.not_found":                "Not found",
	"error.internal_error":           "Internal server error",
	"error.too_many_requests":        "Too many requests, try again later",
	"error.pagination_invalid":       "Invalid pagination parameters",
	"error.auth_header_missing":      "Authorization header is missing",
	"error.auth_header_invalid":      "Authorization header is invalid",
	"error.token_invalid":            "Invalid token",
	"error.token_revoked":            "Token has been revoked, please sign in again",
	"error.login_too_many":           "Too many login attempts, retry in %d seconds",
	"error.rate_limit_unavailable":   "Rate limiter is unavailable",
	"error.jwt_secret_missing":       "JWT secret is not configured",
	"error.login_failed":             "Invalid email or password",
	"error.admin_login_failed":       "Invalid username or password",
	"error.user_disabled":            "Account is disabled",
	"error.admin_disabled":           "Admin account is disabled",
	"error.password_invalid":         "Current password is incorrect",
	"error.password_weak":            "Password is too weak",
	"error.password_min_length":      "Password must be at least %d characters",
	"error.password_require_upper":   "Password must contain an uppercase letter",
	"error.password_require_lower":   "Password must contain a lowercase letter",
	"error.password_require_number":  "Password must contain a digit",
	"error.password_require_special": "Password must contain a special character",
	"error.password_numeric":         "Password cannot be entirely numeric",
	"error.password_too_similar":     "Password is too similar to your account details",
	"error.email_invalid":            "Invalid email",
	"error.email_exists":             "A user with this email already exists",
	"error.username_invalid":         "Invalid username",
	"error.username_reserved":        "This username is not allowed",
	"error.username_exists":          "A user with this username already exists",
	"error.profile_invalid":          "Invalid profile data",
	"error.user_not_found":           "User not found",
	"error.admin_not_found":          "Admin not found",
	"error.admin_exists":             "An admin with this username already exists",
	"error.cannot_modify_self":       "You cannot modify your own account",
	"error.captcha_required":         "Captcha is required",
	"error.captcha_invalid":          "Captcha is invalid",
	"error.captcha_config_invalid":   "Captcha is misconfigured",
	"error.validation_failed":        "Validation failed",
	"error.recipe_not_found":         "Recipe not found",
	"error.recipe_forbidden":         "Only the author can modify this recipe",
	"error.already_in_favorites":     "Recipe is already in favorites",
	"error.not_in_favorites":         "Recipe is not in favorites",
	"error.already_in_cart":          "Recipe is already in the shopping cart",
	"error.not_in_cart":              "Recipe is not in the shopping cart",
	"error.list_kind_invalid":        "Unknown list kind",
	"error.shopping_list_failed":     "Failed to build the shopping list",
	"error.author_not_found":         "Author not found",
	"error.self_subscribe":           "You cannot subscribe to yourself",
	"error.already_subscribed":       "Already subscribed to this author",
	"error.not_subscribed":           "Not subscribed to this author",
	"error.recipes_limit_invalid":    "Invalid recipes_limit",
	"error.tag_not_found":            "Tag not found",
	"error.tag_name_exists":          "A tag with this name already exists",
	"error.slug_exists":              "A tag with this slug already exists",
	"error.tag_in_use":               "Tag is used by recipes",
	"error.ingredient_not_found":     "Ingredient not found",
	"error.ingredient_exists":        "This ingredient already exists",
	"error.ingredient_in_use":        "Ingredient is used by recipes",
	"error.ingredient_csv_invalid":   "Invalid ingredient CSV",
	"error.file_required":            "File is required",
	"error.short_link_not_found":     "Short link not found",
	"error.short_link_failed":        "Failed to create a short link",
	"error.image_invalid":            "Invalid image",
	"error.image_too_large":          "Image is too large",
	"error.image_type_not_allowed":   "Image type is not allowed",
	"error.image_dimensions":         "Image dimensions are too large",
	"error.storage_unavailable":      "Image storage is unavailable",
	"error.role_unknown":             "Unknown role",
	"error.authz_failed":             "Authorization check failed",

	"validation.required":                     "This field is required",
	"validation.too_long":                     "At most %d characters",
	"validation.min_value":                    "Must be at least %d",
	"validation.first_name_invalid":           "First name is required, at most %d characters",
	"validation.last_name_invalid":            "Last name is required, at most %d characters",
	"validation.user_status_invalid":          "Invalid user status",
	"validation.tag_name_invalid":             "Tag name is required, at most %d characters",
	"validation.tag_slug_invalid":             "Slug may contain only latin letters, digits, - and _",
	"validation.ingredient_name_invalid":      "Ingredient name is required, at most %d characters",
	"validation.ingredient_unit_invalid":      "Measurement unit is required, at most %d characters",
	"validation.recipe_tags_required":         "At least one tag is required",
	"validation.recipe_tags_duplicate":        "Tags must be unique",
	"validation.recipe_tag_not_found":         "Unknown tag",
	"validation.recipe_ingredients_required":  "At least one ingredient is required",
	"validation.recipe_ingredients_duplicate": "Ingredients must be unique",
	"validation.recipe_ingredient_not_found":  "Unknown ingredient",
}

var messagesZH = map[string]string{
	"success": "成功",

	"error.bad_request":              "请求参数错误",
	"error.unauthorized":             "请先登录",
	"error.forbidden":                "没有权限",
	"error.not_found":                "资源不存在",
	"error.internal_error":           "服务器内部错误",
	"error.too_many_requests":        "请求过于频繁，请稍后再试",
	"error.pagination_invalid":       "分页参数错误",
	"error.auth_header_missing":      "缺少 Authorization 头",
	"error.auth_header_invalid":      "Authorization 头格式错误",
	"error.token_invalid":            "Token 无效",
	"error.token_revoked":            "Token 已失效，请重新登录",
	"error.login_too_many":           "登录尝试次数过多，请 %d 秒后再试",
	"error.rate_limit_unavailable":   "限流服务暂不可用",
	"error.jwt_secret_missing":       "未配置 JWT 密钥",
	"error.login_failed":             "邮箱或密码错误",
	"error.admin_login_failed":       "用户名或密码错误",
	"error.user_disabled":            "账号已被禁用",
	"error.admin_disabled":           "管理员账号已停用",
	"error.password_invalid":         "当前密码错误",
	"error.password_weak":            "密码强度不足",
	"error.password_min_length":      "密码长度至少 %d 位",
	"error.password_require_upper":   "密码需包含大写字母",
	"error.password_require_lower":   "密码需包含小写字母",
	"error.password_require_number":  "密码需包含数字",
	"error.password_require_special": "密码需包含特殊字符",
	"error.password_numeric":         "密码不能全为数字",
	"error.password_too_similar":     "密码与账号信息过于相似",
	"error.email_invalid":            "邮箱格式错误",
	"error.email_exists":             "邮箱已被注册",
	"error.username_invalid":         "用户名格式错误",
	"error.username_reserved":        "该用户名不可用",
	"error.username_exists":          "用户名已存在",
	"error.profile_invalid":          "资料格式错误",
	"error.user_not_found":           "用户不存在",
	"error.admin_not_found":          "管理员不存在",
	"error.admin_exists":             "管理员用户名已存在",
	"error.cannot_modify_self":       "不能修改自己的账号",
	"error.captcha_required":         "请输入验证码",
	"error.captcha_invalid":          "验证码错误",
	"error.captcha_config_invalid":   "验证码配置错误",
	"error.validation_failed":        "参数校验失败",
	"error.recipe_not_found":         "菜谱不存在",
	"error.recipe_forbidden":         "只有作者可以修改菜谱",
	"error.already_in_favorites":     "菜谱已在收藏中",
	"error.not_in_favorites":         "菜谱不在收藏中",
	"error.already_in_cart":          "菜谱已在购物清单中",
	"error.not_in_cart":              "菜谱不在购物清单中",
	"error.list_kind_invalid":        "未知的清单类型",
	"error.shopping_list_failed":     "生成购物清单失败",
	"error.author_not_found":         "作者不存在",
	"error.self_subscribe":           "不能订阅自己",
	"error.already_subscribed":       "已订阅该作者",
	"error.not_subscribed":           "未订阅该作者",
	"error.recipes_limit_invalid":    "recipes_limit 参数错误",
	"error.tag_not_found":            "标签不存在",
	"error.tag_name_exists":          "标签名称已存在",
	"error.slug_exists":              "标签 slug 已存在",
	"error.tag_in_use":               "标签仍被菜谱使用",
	"error.ingredient_not_found":     "食材不存在",
	"error.ingredient_exists":        "食材已存在",
	"error.ingredient_in_use":        "食材仍被菜谱使用",
	"error.ingredient_csv_invalid":   "食材 CSV 格式错误",
	"error.file_required":            "请上传文件",
	"error.short_link_not_found":     "短链不存在",
	"error.short_link_failed":        "生成短链失败",
	"error.image_invalid":            "图片格式错误",
	"error.image_too_large":          "图片过大",
	"error.image_type_not_allowed":   "不支持的图片类型",
	"error.image_dimensions":         "图片尺寸过大",
	"error.storage_unavailable":      "图片存储不可用",
	"error.role_unknown":             "角色不存在",
	"error.authz_failed":             "权限校验失败",

	"validation.required":                     "必填",
	"validation.too_long":                     "最多 %d 个字符",
	"validation.min_value":                    "不能小于 %d",
	"validation.first_name_invalid":           "名必填，最多 %d 个字符",
	"validation.last_name_invalid":            "姓必填，最多 %d 个字符",
	"validation.user_status_invalid":          "用户状态无效",
	"validation.tag_name_invalid":             "标签名称必填，最多 %d 个字符",
	"validation.tag_slug_invalid":             "slug 只能包含字母、数字、- 和 _",
	"validation.ingredient_name_invalid":      "食材名称必填，最多 %d 个字符",
	"validation.ingredient_unit_invalid":      "计量单位必填，最多 %d 个字符",
	"validation.recipe_tags_required":         "至少选择一个标签",
	"validation.recipe_tags_duplicate":        "标签不能重复",
	"validation.recipe_tag_not_found":         "标签不存在",
	"validation.recipe_ingredients_required":  "至少添加一种食材",
	"validation.recipe_ingredients_duplicate": "食材不能重复",
	"validation.recipe_ingredient_not_found":  "食材不存在",
}
